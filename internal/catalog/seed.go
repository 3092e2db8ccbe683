package catalog

// defaultCatalog is the built-in catalog, set by init().
var defaultCatalog *Catalog

func init() {
	c, err := Load(seedRows)
	if err != nil {
		panic("catalog: invalid seed data: " + err.Error())
	}
	defaultCatalog = c
}

// Default returns the built-in catalog.
func Default() *Catalog {
	return defaultCatalog
}

// SeedRows returns a copy of the built-in catalog rows.
func SeedRows() []Row {
	out := make([]Row, len(seedRows))
	for i, r := range seedRows {
		row := make(Row, len(r))
		for k, v := range r {
			row[k] = v
		}
		out[i] = row
	}
	return out
}

// seedRows defines the built-in contexts: 18 contexts across 11 categories.
// Every variation is supported by at least three contexts.
var seedRows = []Row{
	// Work & Money
	{
		ColID:               "server_tips",
		ColName:             "Server Tips",
		ColCategory:         "Work & Money",
		ColValueMin:         "20",
		ColValueMax:         "80",
		ColUnit:             "$",
		ColDescription:      "Tips earned by a restaurant server over several shifts",
		ColDataLabel:        "nightly tips",
		ColMinimalTemplate:  "{name} works as a server. {data}",
		ColStandardTemplate: "{name} works evening shifts as a server at a busy restaurant and writes down the {label} after every shift. {data}",
		ColRichTemplate:     "{name} is saving up for a new laptop and picked up evening shifts as a server at a busy downtown restaurant. Tips change a lot from one night to the next, so {name} keeps a small notebook in an apron pocket. At the end of each shift the {label} go into the notebook. {data}",
		ColCalculate:        "Y",
		ColMissingValue:     "Y",
		ColCompare:          "Y",
		ColMissingCount:     "Y",
	},
	{
		ColID:               "grocery_bills",
		ColName:             "Grocery Bills",
		ColCategory:         "Work & Money",
		ColValueMin:         "15",
		ColValueMax:         "180",
		ColUnit:             "$",
		ColDescription:      "Weekly grocery receipts for a household",
		ColDataLabel:        "weekly grocery bills",
		ColMinimalTemplate:  "{name} keeps grocery receipts. {data}",
		ColStandardTemplate: "{name} does the family shopping every Saturday and keeps the receipts to track the {label}. {data}",
		ColRichTemplate:     "Food prices have been climbing, and {name} wants to set a realistic shopping budget for the family. Every Saturday {name} drives to the market with a list and tries to stick to it. The receipts go into a shoebox so the {label} can be checked later. {data}",
		ColCalculate:        "Y",
		ColMissingValue:     "Y",
		ColMissingCount:     "Y",
	},

	// Health
	{
		ColID:               "heart_rate",
		ColName:             "Heart Rate Monitoring",
		ColCategory:         "Health",
		ColValueMin:         "55",
		ColValueMax:         "110",
		ColUnit:             "bpm",
		ColDescription:      "Resting heart rate readings from a fitness watch",
		ColDataLabel:        "heart rate readings",
		ColMinimalTemplate:  "{name} checks a fitness watch. {data}",
		ColStandardTemplate: "{name} wears a fitness watch every day and looks at the {label} each morning before breakfast. {data}",
		ColRichTemplate:     "After a check-up, a doctor asked {name} to keep an eye on resting heart rate for a while. {name} bought a fitness watch and wears it every day, even while sleeping. Each morning before breakfast the {label} are copied into a health app. {data}",
		ColCalculate:        "Y",
		ColMissingValue:     "Y",
		ColCompare:          "Y",
	},

	// School
	{
		ColID:               "test_scores",
		ColName:             "Test Scores",
		ColCategory:         "School",
		ColValueMin:         "50",
		ColValueMax:         "100",
		ColUnit:             "points",
		ColDescription:      "Scores on a series of class tests",
		ColDataLabel:        "test scores",
		ColMinimalTemplate:  "{name} took some class tests. {data}",
		ColStandardTemplate: "{name} took a series of science tests this term and wrote down the {label} in a planner. {data}",
		ColRichTemplate:     "{name} wants to get into the advanced science class next year, and the teacher said grades this term will count. To stay on track, {name} wrote every result in a planner as soon as the tests came back. The {label} are listed there in order. {data}",
		ColCalculate:        "Y",
		ColMissingValue:     "Y",
		ColCompare:          "Y",
		ColMissingCount:     "Y",
	},

	// Weather
	{
		ColID:               "daily_temperature",
		ColName:             "Daily Temperature",
		ColCategory:         "Weather",
		ColValueMin:         "-5",
		ColValueMax:         "35",
		ColUnit:             "°C",
		ColDescription:      "Midday temperatures recorded at a school weather station",
		ColDataLabel:        "midday temperatures",
		ColMinimalTemplate:  "{name} reads a thermometer. {data}",
		ColStandardTemplate: "{name} runs the school weather station and records the {label} at noon every day. {data}",
		ColRichTemplate:     "The science club at {name}'s school set up a small weather station on the roof last spring. {name} volunteered to read it, so every day at noon {name} climbs the stairs with a clipboard. The {label} are then posted on the club noticeboard. {data}",
		ColCalculate:        "Y",
		ColCompare:          "Y",
	},
	{
		ColID:               "rainfall",
		ColName:             "Rainfall",
		ColCategory:         "Weather",
		ColValueMin:         "0",
		ColValueMax:         "40",
		ColUnit:             "mm",
		ColDescription:      "Daily rainfall collected in a garden rain gauge",
		ColDataLabel:        "daily rainfall amounts",
		ColMinimalTemplate:  "{name} has a rain gauge. {data}",
		ColStandardTemplate: "{name} keeps a rain gauge in the vegetable garden and empties it each evening to log the {label}. {data}",
		ColRichTemplate:     "{name} grows tomatoes and beans and hates wasting water on days when the garden does not need it. A plastic rain gauge sits between the rows, and {name} empties it every evening. The {label} help decide when to water. {data}",
		ColCalculate:        "Y",
		ColMissingValue:     "Y",
	},

	// Technology
	{
		ColID:               "download_sizes",
		ColName:             "Download Sizes",
		ColCategory:         "Technology",
		ColValueMin:         "10",
		ColValueMax:         "900",
		ColUnit:             "MB",
		ColDescription:      "Sizes of app updates downloaded on a phone",
		ColDataLabel:        "download sizes",
		ColMinimalTemplate:  "{name} downloads app updates. {data}",
		ColStandardTemplate: "{name} is on a limited data plan and checks the {label} of every app update before installing it. {data}",
		ColRichTemplate:     "{name} has a phone plan with a small monthly data allowance and has gone over the limit twice. Now {name} only installs updates over school wifi and looks at each one first. The {label} are listed in the app store history. {data}",
		ColCalculate:        "Y",
		ColMissingValue:     "Y",
		ColMissingCount:     "Y",
	},
	{
		ColID:               "phone_battery",
		ColName:             "Phone Battery",
		ColCategory:         "Technology",
		ColValueMin:         "5",
		ColValueMax:         "100",
		ColUnit:             "%",
		ColDescription:      "Battery level left on a phone at the end of the day",
		ColDataLabel:        "battery levels",
		ColMinimalTemplate:  "{name} checks a phone battery. {data}",
		ColStandardTemplate: "{name} wonders whether a phone needs a new battery and notes the {label} left at bedtime. {data}",
		ColRichTemplate:     "{name}'s phone is three years old and seems to die earlier every week. Before paying for a repair, {name} decides to collect some evidence. Each night at bedtime the {label} shown on the lock screen are written down. {data}",
		ColCalculate:        "Y",
		ColCompare:          "Y",
	},

	// Sports
	{
		ColID:               "running_distance",
		ColName:             "Running Distance",
		ColCategory:         "Sports",
		ColValueMin:         "2",
		ColValueMax:         "15",
		ColUnit:             "km",
		ColDescription:      "Distances covered on training runs",
		ColDataLabel:        "run distances",
		ColMinimalTemplate:  "{name} goes running. {data}",
		ColStandardTemplate: "{name} is training for a charity race and uses a running app to save the {label} of each run. {data}",
		ColRichTemplate:     "{name} signed up for a charity half marathon to raise money for the local animal shelter. With the race two months away, {name} runs before school several times a week. A running app saves the {label} after each session. {data}",
		ColCalculate:        "Y",
		ColMissingValue:     "Y",
		ColCompare:          "Y",
		ColMissingCount:     "Y",
	},

	// Community
	{
		ColID:               "museum_visitors",
		ColName:             "Museum Visitors",
		ColCategory:         "Community",
		ColValueMin:         "120",
		ColValueMax:         "900",
		ColUnit:             "people",
		ColDescription:      "Daily visitor counts at a local museum",
		ColDataLabel:        "daily visitor counts",
		ColMinimalTemplate:  "{name} counts museum visitors. {data}",
		ColStandardTemplate: "{name} volunteers at the front desk of the town museum and reports the {label} to the director. {data}",
		ColRichTemplate:     "The town museum opened a new dinosaur exhibit this month, and the director wants to know whether it is bringing in more people. {name} volunteers at the front desk and clicks a tally counter for every guest. The {label} go into a weekly report. {data}",
		ColCalculate:        "Y",
		ColCompare:          "Y",
		ColMissingCount:     "Y",
	},

	// Travel
	{
		ColID:               "baggage_weight",
		ColName:             "Baggage Weight",
		ColCategory:         "Travel",
		ColValueMin:         "8",
		ColValueMax:         "32",
		ColUnit:             "kg",
		ColDescription:      "Weights of suitcases checked in for a family trip",
		ColDataLabel:        "suitcase weights",
		ColMinimalTemplate:  "{name} weighs suitcases. {data}",
		ColStandardTemplate: "{name} is packing for a family trip and weighs each bag at home to check the {label}. {data}",
		ColRichTemplate:     "{name}'s family is flying to visit relatives overseas, and the airline charges extra for heavy bags. The night before the flight, {name} drags every suitcase onto the bathroom scale. The {label} are written on sticky notes. {data}",
		ColCalculate:        "Y",
		ColMissingValue:     "Y",
		ColCompare:          "Y",
	},
	// Transportation
	{
		ColID:               "bus_commute",
		ColName:             "Bus Commute",
		ColCategory:         "Transportation",
		ColValueMin:         "12",
		ColValueMax:         "55",
		ColUnit:             "min",
		ColDescription:      "Door-to-door times of a daily bus ride to school",
		ColDataLabel:        "commute times",
		ColMinimalTemplate:  "{name} takes the bus. {data}",
		ColStandardTemplate: "{name} rides the number 14 bus to school and times the trip with a stopwatch to track the {label}. {data}",
		ColRichTemplate:     "Road works started on the main avenue this month, and {name} has been late to first period twice. To show the school that the bus is to blame, {name} starts a stopwatch at the front door and stops it at the school gate. The {label} are saved in a phone note. {data}",
		ColCalculate:        "Y",
		ColMissingValue:     "Y",
		ColCompare:          "Y",
		ColMissingCount:     "Y",
	},
	{
		ColID:               "car_trips",
		ColName:             "Family Car Trips",
		ColCategory:         "Transportation",
		ColValueMin:         "3",
		ColValueMax:         "60",
		ColUnit:             "km",
		ColDescription:      "Distances driven on weekend errands, read from the trip meter",
		ColDataLabel:        "trip distances",
		ColMinimalTemplate:  "{name} reads a trip meter. {data}",
		ColStandardTemplate: "{name} resets the car's trip meter before every weekend errand and notes the {label}. {data}",
		ColRichTemplate:     "{name}'s parents are deciding whether a small electric car could handle the family's weekend driving. To help, {name} resets the trip meter before each errand and reads it again back in the driveway. The {label} go on a chart on the fridge. {data}",
		ColCalculate:        "Y",
		ColCompare:          "Y",
	},

	// Household
	{
		ColID:               "electricity_use",
		ColName:             "Electricity Use",
		ColCategory:         "Household",
		ColValueMin:         "4",
		ColValueMax:         "30",
		ColUnit:             "kWh",
		ColDescription:      "Daily electricity readings from a home smart meter",
		ColDataLabel:        "daily electricity readings",
		ColMinimalTemplate:  "{name} reads the meter. {data}",
		ColStandardTemplate: "{name} checks the smart meter in the hallway every evening and writes down the {label}. {data}",
		ColRichTemplate:     "The last electricity bill was much higher than usual, and {name}'s family wants to find out why. {name} offered to check the smart meter in the hallway every evening after dinner. The {label} are kept on a sheet taped next to the meter. {data}",
		ColCalculate:        "Y",
		ColMissingValue:     "Y",
		ColMissingCount:     "Y",
	},
	{
		ColID:               "water_use",
		ColName:             "Water Use",
		ColCategory:         "Household",
		ColValueMin:         "80",
		ColValueMax:         "400",
		ColUnit:             "L",
		ColDescription:      "Litres of water a household uses each day",
		ColDataLabel:        "daily water use figures",
		ColMinimalTemplate:  "{name} tracks water use. {data}",
		ColStandardTemplate: "{name} reads the water meter by the garden tap each night to record the {label}. {data}",
		ColRichTemplate:     "The town asked every household to save water during a dry summer, and {name} took the job seriously. Each night {name} lifts the cover by the garden tap and reads the water meter with a flashlight. The {label} are shared with the family at breakfast. {data}",
		ColCalculate:        "Y",
		ColMissingValue:     "Y",
		ColCompare:          "Y",
	},

	// Music
	{
		ColID:               "song_tempo",
		ColName:             "Song Tempo",
		ColCategory:         "Music",
		ColValueMin:         "60",
		ColValueMax:         "180",
		ColUnit:             "bpm",
		ColDescription:      "Tempos of songs on a playlist, measured with a metronome app",
		ColDataLabel:        "song tempos",
		ColMinimalTemplate:  "{name} measures song tempos. {data}",
		ColStandardTemplate: "{name} is building a running playlist and taps along with a metronome app to find the {label}. {data}",
		ColRichTemplate:     "{name} plays drums in the school band and wants a warm-up playlist that matches the band's pace. For each song {name} taps along on a metronome app until the beat settles. The {label} are noted next to each title. {data}",
		ColCalculate:        "Y",
		ColMissingValue:     "Y",
		ColCompare:          "Y",
	},
	{
		ColID:               "guitar_practice",
		ColName:             "Guitar Practice",
		ColCategory:         "Music",
		ColValueMin:         "10",
		ColValueMax:         "90",
		ColUnit:             "min",
		ColDescription:      "Length of daily guitar practice sessions",
		ColDataLabel:        "practice session lengths",
		ColMinimalTemplate:  "{name} practises guitar. {data}",
		ColStandardTemplate: "{name} is learning guitar and logs the {label} in a practice diary after every session. {data}",
		ColRichTemplate:     "{name} got a guitar for a birthday and the teacher asked for steady daily practice before the spring recital. A timer on the music stand runs while {name} plays scales and chords. The {label} go into a diary the teacher checks each week. {data}",
		ColCalculate:        "Y",
		ColMissingValue:     "Y",
		ColMissingCount:     "Y",
	},

	// Technology
	{
		ColID:               "photo_sizes",
		ColName:             "Photo File Sizes",
		ColCategory:         "Technology",
		ColValueMin:         "1",
		ColValueMax:         "25",
		ColUnit:             "MB",
		ColDescription:      "File sizes of photos taken on a class trip",
		ColDataLabel:        "photo file sizes",
		ColMinimalTemplate:  "{name} copies photos. {data}",
		ColStandardTemplate: "{name} is copying class trip photos to a memory stick and checks the {label} first. {data}",
		ColRichTemplate:     "{name} was the class photographer on the trip to the science museum and promised to share every picture. Before copying them to a small memory stick, {name} looks at how much space they need. The {label} are shown in the folder view. {data}",
		ColCalculate:        "Y",
		ColMissingValue:     "Y",
		ColCompare:          "Y",
		ColMissingCount:     "Y",
	},
}
