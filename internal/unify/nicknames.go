package unify

// nicknames maps common short forms to their formal name. Two cue names
// are treated as related when one maps to the other or both map to the
// same formal name.
var nicknames = map[string]string{
	"ABBY":   "ABIGAIL",
	"ALEX":   "ALEXANDER",
	"ANDY":   "ANDREW",
	"BECKY":  "REBECCA",
	"BETH":   "ELIZABETH",
	"BILL":   "WILLIAM",
	"BOB":    "ROBERT",
	"BOBBY":  "ROBERT",
	"CHRIS":  "CHRISTOPHER",
	"DAN":    "DANIEL",
	"DANNY":  "DANIEL",
	"DEB":    "DEBORAH",
	"DEBBIE": "DEBORAH",
	"DICK":   "RICHARD",
	"DREW":   "ANDREW",
	"ED":     "EDWARD",
	"EDDIE":  "EDWARD",
	"FRANK":  "FRANCIS",
	"GABE":   "GABRIEL",
	"GREG":   "GREGORY",
	"HARRY":  "HAROLD",
	"JEN":    "JENNIFER",
	"JENNY":  "JENNIFER",
	"JESS":   "JESSICA",
	"JIM":    "JAMES",
	"JIMMY":  "JAMES",
	"JOE":    "JOSEPH",
	"JOEY":   "JOSEPH",
	"KATE":   "KATHERINE",
	"KATHY":  "KATHERINE",
	"KATIE":  "KATHERINE",
	"LARRY":  "LAWRENCE",
	"LIZ":    "ELIZABETH",
	"MATT":   "MATTHEW",
	"MEG":    "MARGARET",
	"MIKE":   "MICHAEL",
	"NICK":   "NICHOLAS",
	"PEGGY":  "MARGARET",
	"RICH":   "RICHARD",
	"RICK":   "RICHARD",
	"ROB":    "ROBERT",
	"SAM":    "SAMUEL",
	"STEVE":  "STEVEN",
	"SUE":    "SUSAN",
	"SUSIE":  "SUSAN",
	"TED":    "EDWARD",
	"TOM":    "THOMAS",
	"TOMMY":  "THOMAS",
	"TONY":   "ANTHONY",
	"TRISH":  "PATRICIA",
	"VICKY":  "VICTORIA",
	"WILL":   "WILLIAM",
	"ZACK":   "ZACHARY",
}

// nicknameRelated reports whether two uppercase names share a nickname
// mapping.
func nicknameRelated(a, b string) bool {
	if nicknames[a] == b || nicknames[b] == a {
		return true
	}
	fa, fb := nicknames[a], nicknames[b]
	return fa != "" && fa == fb
}
