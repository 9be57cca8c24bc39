package parser

// ArgRange is the permitted argument count of a known OData function.
type ArgRange struct {
	Min int
	Max int
}

// Functions catalogs the OData built-in functions and their arities, keyed
// by lowercased name (the surface spelling matchesPattern is looked up as
// matchespattern). The parser itself accepts any call shape; backends
// consult the catalog to tell an unknown function apart from a known one
// they cannot render.
var Functions = map[string]ArgRange{
	// String functions.
	"concat":         {2, 2},
	"contains":       {2, 2},
	"endswith":       {2, 2},
	"indexof":        {2, 2},
	"length":         {1, 1},
	"startswith":     {2, 2},
	"substring":      {2, 3},
	"matchespattern": {2, 2},
	"tolower":        {1, 1},
	"toupper":        {1, 1},
	"trim":           {1, 1},

	// Date and time functions.
	"year":               {1, 1},
	"month":              {1, 1},
	"day":                {1, 1},
	"hour":               {1, 1},
	"minute":             {1, 1},
	"second":             {1, 1},
	"fractionalseconds":  {1, 1},
	"totalseconds":       {1, 1},
	"date":               {1, 1},
	"time":               {1, 1},
	"totaloffsetminutes": {1, 1},
	"mindatetime":        {0, 0},
	"maxdatetime":        {0, 0},
	"now":                {0, 0},

	// Math functions.
	"round":   {1, 1},
	"floor":   {1, 1},
	"ceiling": {1, 1},

	// Geo functions.
	"geo.distance":   {2, 2},
	"geo.length":     {1, 1},
	"geo.intersects": {2, 2},

	// Set functions.
	"hassubset":      {2, 2},
	"hassubsequence": {2, 2},

	// Quantifiers over collection paths.
	"any": {1, 2},
	"all": {2, 2},
}

// KnownFunction reports whether name is in the OData function catalog.
func KnownFunction(name string) bool {
	_, ok := Functions[name]
	return ok
}
