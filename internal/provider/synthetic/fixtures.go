package synthetic

import (
	"time"

	"github.com/albapepper/matchfeed/internal/event"
)

// Premier League fixture list from the April 2024 round, weekend slots first.
var footballFixtures = []fixture{
	{time.April, 13, 12, 30, "Newcastle United", "Tottenham Hotspur", "Newcastle Stadium, Newcastle", event.StatusScheduled, "Premier League", ""},
	{time.April, 13, 15, 0, "Luton Town", "Manchester United", "Luton Stadium, Luton", event.StatusScheduled, "Premier League", ""},
	{time.April, 13, 17, 30, "Leicester City", "Arsenal", "Leicester Stadium, Leicester", event.StatusScheduled, "Premier League", ""},
	{time.April, 14, 14, 0, "Liverpool", "Chelsea", "Liverpool Stadium, Liverpool", event.StatusScheduled, "Premier League", ""},
	{time.April, 14, 16, 30, "Manchester City", "Aston Villa", "Manchester Stadium, Manchester", event.StatusScheduled, "Premier League", ""},
	{time.April, 15, 20, 0, "Nottingham Forest", "Bournemouth", "Nottingham Stadium, Nottingham", event.StatusScheduled, "Premier League", ""},
	{time.April, 16, 19, 45, "Brighton", "Crystal Palace", "Brighton Stadium, Brighton", event.StatusScheduled, "Premier League", ""},
	{time.April, 17, 19, 45, "Everton", "Southampton", "Liverpool Stadium, Liverpool", event.StatusScheduled, "Premier League", ""},
	{time.April, 13, 12, 30, "Brentford", "Fulham", "London Stadium, London", event.StatusScheduled, "Premier League", ""},
	{time.April, 13, 15, 0, "West Ham United", "Wolverhampton", "London Stadium, London", event.StatusScheduled, "Premier League", ""},
}

// NBA fixture list from the April 2024 schedule, US Eastern tip-offs.
var basketballFixtures = []fixture{
	{time.April, 7, 19, 0, "Boston Celtics", "Portland Trail Blazers", "Boston Arena", event.StatusUpcoming, "NBA", ""},
	{time.April, 7, 20, 30, "New York Knicks", "Chicago Bulls", "New York Arena", event.StatusUpcoming, "NBA", ""},
	{time.April, 8, 19, 0, "Cleveland Cavaliers", "Memphis Grizzlies", "Cleveland Arena", event.StatusUpcoming, "NBA", ""},
	{time.April, 9, 19, 30, "Milwaukee Bucks", "Boston Celtics", "Milwaukee Arena", event.StatusUpcoming, "NBA", ""},
	{time.April, 9, 20, 0, "Orlando Magic", "Houston Rockets", "Orlando Arena", event.StatusUpcoming, "NBA", ""},
	{time.April, 10, 19, 0, "Atlanta Hawks", "Charlotte Hornets", "Atlanta Arena", event.StatusUpcoming, "NBA", ""},
	{time.April, 10, 19, 30, "Brooklyn Nets", "Toronto Raptors", "Brooklyn Arena", event.StatusUpcoming, "NBA", ""},
	{time.April, 11, 19, 0, "Philadelphia 76ers", "Orlando Magic", "Philadelphia Arena", event.StatusUpcoming, "NBA", ""},
	{time.April, 12, 19, 30, "Washington Wizards", "Chicago Bulls", "Washington Arena", event.StatusUpcoming, "NBA", ""},
	{time.April, 12, 20, 0, "Indiana Pacers", "Cleveland Cavaliers", "Indiana Arena", event.StatusUpcoming, "NBA", ""},
}

// IPL fixture list from the April 2024 schedule, IST start times and real
// venues. T20 format throughout.
var cricketFixtures = []fixture{
	{time.April, 7, 15, 30, "Royal Challengers Bangalore", "Rajasthan Royals", "M. Chinnaswamy Stadium, Bangalore", event.StatusScheduled, "", "T20"},
	{time.April, 7, 19, 30, "Gujarat Titans", "Lucknow Super Giants", "Narendra Modi Stadium, Ahmedabad", event.StatusScheduled, "", "T20"},
	{time.April, 8, 19, 30, "Mumbai Indians", "Chennai Super Kings", "Wankhede Stadium, Mumbai", event.StatusScheduled, "", "T20"},
	{time.April, 9, 19, 30, "Delhi Capitals", "Kolkata Knight Riders", "Arun Jaitley Stadium, Delhi", event.StatusScheduled, "", "T20"},
	{time.April, 10, 19, 30, "Punjab Kings", "Sunrisers Hyderabad", "Punjab Cricket Association Stadium, Mohali", event.StatusScheduled, "", "T20"},
	{time.April, 11, 19, 30, "Rajasthan Royals", "Gujarat Titans", "Sawai Mansingh Stadium, Jaipur", event.StatusScheduled, "", "T20"},
	{time.April, 12, 19, 30, "Mumbai Indians", "Royal Challengers Bangalore", "Wankhede Stadium, Mumbai", event.StatusScheduled, "", "T20"},
	{time.April, 13, 15, 30, "Chennai Super Kings", "Sunrisers Hyderabad", "MA Chidambaram Stadium, Chennai", event.StatusScheduled, "", "T20"},
	{time.April, 13, 19, 30, "Lucknow Super Giants", "Kolkata Knight Riders", "Ekana Cricket Stadium, Lucknow", event.StatusScheduled, "", "T20"},
	{time.April, 14, 15, 30, "Delhi Capitals", "Mumbai Indians", "Arun Jaitley Stadium, Delhi", event.StatusScheduled, "", "T20"},
}
