package dictionary

// defaultTeamAliases maps normalized canonical club names to the nicknames
// and abbreviations supporters actually type. Snapshot-provided aliases are
// merged on top, so clubs absent here still resolve.
var defaultTeamAliases = map[string][]string{
	"arsenal":           {"gunners", "afc"},
	"aston villa":       {"villa", "villans", "avfc"},
	"bournemouth":       {"cherries", "afcb"},
	"brentford":         {"bees"},
	"brighton":          {"seagulls", "albion", "bha"},
	"burnley":           {"clarets"},
	"chelsea":           {"blues", "cfc"},
	"crystal palace":    {"palace", "eagles", "cpfc"},
	"everton":           {"toffees", "efc"},
	"fulham":            {"cottagers", "ffc"},
	"leeds":             {"leeds united", "whites", "lufc"},
	"leicester":         {"leicester city", "foxes", "lcfc"},
	"liverpool":         {"reds", "lfc"},
	"man city":          {"manchester city", "city", "citizens", "mcfc"},
	"man utd":           {"manchester united", "united", "man united", "red devils", "mufc"},
	"newcastle":         {"newcastle united", "magpies", "toon", "nufc"},
	"nottingham forest": {"nott'm forest", "forest", "nffc"},
	"southampton":       {"saints", "sfc"},
	"sunderland":        {"black cats", "safc"},
	"spurs":             {"tottenham", "tottenham hotspur", "lilywhites", "thfc"},
	"west ham":          {"west ham united", "hammers", "irons", "whufc"},
	"wolves":            {"wolverhampton", "wolverhampton wanderers", "wwfc"},
}
