package level

// demoGrid is the built-in level: three rooms joined by corridors, a door,
// a secret closet, and a hidden service passage in the north-east.
var demoGrid = []string{
	"####################          ",
	"#..................#          ",
	"#..................#   hhhhhh ",
	"#..................#   h....h ",
	"#..................+...h....h ",
	"#..................#   hhhhhh ",
	"#...........@......#          ",
	"#..................#          ",
	"########++##########          ",
	"       #..#                   ",
	"       #..#                   ",
	"  ######..#######             ",
	"  #.............#  sssss      ",
	"  #.............#  s...s      ",
	"  #.............+..s...s      ",
	"  #.............#  sssss      ",
	"  ###############             ",
}

// Demo returns the built-in demonstration level.
func Demo() *Level {
	lvl, err := Parse("demo", demoGrid)
	if err != nil {
		// The grid is compiled in; a parse failure is a programming error.
		panic(err)
	}
	return lvl
}
