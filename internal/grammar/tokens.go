package grammar

// Capture group names produced by the grammar.
const (
	ParamPlayer    = "player"
	ParamPercent   = "percent"
	ParamQueryType = "querytype"
	ParamQuery     = "query"
	ParamInput     = "input"
)

// DigitWords are the single-digit numbers as dictation software spells them.
var DigitWords = []string{"zero", "one", "two", "three", "four", "five", "six", "seven", "eight", "nine"}

// NewTokens builds the token table for a roster snapshot. playerNames feeds the
// PLAYER alternation; each name is matched literally.
//
// Wording tokens come first, then the capturing tokens built on top of them.
func NewTokens(playerNames []string) (*Table, error) {
	t := NewTable()
	defs := []Token{
		// Alternative ways of saying things; never captured.
		{"track", Words("track", "song", "title", "tune")},
		{"tracks", Words("tracks", "songs", "titles", "tunes", "music")},
		{"album", Words("album", "record")},
		{"volume", Seq(Opt(Lit("the ")), Lit("volume"))},
		{"increase", Words("increase", "raise")},
		{"decrease", Words("decrease", "lower", "reduce")},
		{"play", Words("play", "start playing")},
		{"stop", Seq(Lit("stop"), Opt(Lit(" playing")))},
		{"pause", Seq(Lit("pause"), Opt(Lit(" playing")))},
		{"power", Words("power", "turn", "switch")},
		{"change", Words("set", "change", "make", "turn")},
		{"next", Alt(
			Seq(Opt(Lit("skip to ")), Lit("next"), Opt(Seq(Lit(" "), Ref("track")))),
			Seq(Lit("skip"), Opt(Lit(" this")), Opt(Seq(Lit(" "), Ref("track")))),
		)},
		{"previous", Seq(Opt(Lit("skip to ")), Lit("previous"), Opt(Seq(Lit(" "), Ref("track"))))},
		{"restart", Alt(
			Seq(Lit("restart"), Opt(Seq(Opt(Lit(" this")), Lit(" "), Ref("track")))),
			Seq(Ref("play"), Opt(Seq(Opt(Lit(" this")), Lit(" "), Ref("track"))), Lit(" from "), Opt(Lit("the ")), Lit("beginning")),
		)},
		{"louder", Alt(
			Seq(Opt(Lit("make it ")), Lit("louder")),
			Seq(Ref("increase"), Lit(" "), Ref("volume")),
			Seq(Ref("volume"), Lit(" up")),
		)},
		{"quieter", Alt(
			Seq(Opt(Lit("make it ")), Words("quieter", "softer")),
			Seq(Ref("decrease"), Lit(" "), Ref("volume")),
			Seq(Ref("volume"), Lit(" down")),
		)},
		{"what is", Seq(Words("what is", "what's"), Opt(Lit(" currently")))},
		{"doing", Words("doing", "playing")},

		// Semantically meaningful parts of a command.
		{"PLAYER", Seq(
			Opt(Words("the ", "squeezebox ", "player ")),
			Capture(ParamPlayer, Words(playerNames...)),
			Opt(Words(" squeezebox", " player")),
		)},
		{"PLAYERLOC", Seq(Opt(Words("on ", "in ", "of ")), Ref("PLAYER"))},
		{"QUERY", Capture(ParamQuery, Raw(`\S.*?`))},
		{"QUERYTYPE", Seq(
			Opt(Lit("the ")),
			Capture(ParamQueryType, Alt(
				Lit("playlist"),
				Lit("genre"),
				Lit("artist"),
				Seq(Ref("tracks"), Lit(" by")),
				Ref("album"),
				Ref("track"),
			)),
		)},
		{"PERCENT", Seq(
			Capture(ParamPercent, Alt(Raw(`\d+`), Words(DigitWords...))),
			Opt(Words("%", " percent")),
		)},
		{"INPUT", Capture(ParamInput, Raw(`.*`))},
	}
	for _, d := range defs {
		if err := t.Define(d.Name, d.Node); err != nil {
			return nil, err
		}
	}
	return t, nil
}
