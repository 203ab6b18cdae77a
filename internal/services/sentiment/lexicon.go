package sentiment

// Valence lexicon tuned for financial news headlines. Values follow the
// VADER convention: roughly [-4,4], positive means bullish wording.
var lexicon = map[string]float64{
	// strong positive
	"surge":         3.0,
	"surges":        3.0,
	"surged":        3.0,
	"soar":          3.2,
	"soars":         3.2,
	"soared":        3.2,
	"skyrocket":     3.4,
	"skyrockets":    3.4,
	"breakout":      2.6,
	"record":        2.2,
	"boom":          2.8,
	"booming":       2.8,
	"outperform":    2.4,
	"outperforms":   2.4,
	"outperformed":  2.4,
	"upgrade":       2.2,
	"upgraded":      2.2,
	"upgrades":      2.2,
	"beat":          2.0,
	"beats":         2.0,
	"blowout":       2.6,

	// positive
	"gain":       1.8,
	"gains":      1.8,
	"gained":     1.8,
	"rally":      2.0,
	"rallies":    2.0,
	"rallied":    2.0,
	"rise":       1.5,
	"rises":      1.5,
	"rose":       1.5,
	"climb":      1.5,
	"climbs":     1.5,
	"climbed":    1.5,
	"growth":     1.6,
	"grow":       1.4,
	"grows":      1.4,
	"profit":     1.6,
	"profits":    1.6,
	"profitable": 1.8,
	"bullish":    2.2,
	"bull":       1.6,
	"strong":     1.4,
	"strength":   1.4,
	"positive":   1.3,
	"optimism":   1.6,
	"optimistic": 1.6,
	"recover":    1.4,
	"recovers":   1.4,
	"recovery":   1.4,
	"rebound":    1.6,
	"rebounds":   1.6,
	"rebounded":  1.6,
	"buy":        1.2,
	"buying":     1.2,
	"upside":     1.5,
	"momentum":   1.0,
	"dividend":   0.8,
	"expansion":  1.2,
	"innovative": 1.0,
	"good":       1.1,
	"great":      1.6,
	"solid":      1.2,
	"robust":     1.4,
	"improve":    1.3,
	"improves":   1.3,
	"improved":   1.3,
	"win":        1.4,
	"wins":       1.4,

	// negative
	"loss":        -1.8,
	"losses":      -1.8,
	"lose":        -1.5,
	"loses":       -1.5,
	"lost":        -1.5,
	"fall":        -1.5,
	"falls":       -1.5,
	"fell":        -1.5,
	"drop":        -1.6,
	"drops":       -1.6,
	"dropped":     -1.6,
	"decline":     -1.6,
	"declines":    -1.6,
	"declined":    -1.6,
	"slip":        -1.2,
	"slips":       -1.2,
	"slipped":     -1.2,
	"bearish":     -2.2,
	"bear":        -1.6,
	"weak":        -1.4,
	"weakness":    -1.4,
	"negative":    -1.3,
	"pessimism":   -1.6,
	"pessimistic": -1.6,
	"sell":        -1.2,
	"selling":     -1.2,
	"selloff":     -2.2,
	"downside":    -1.5,
	"risk":        -1.0,
	"risks":       -1.0,
	"risky":       -1.2,
	"fear":        -1.8,
	"fears":       -1.8,
	"concern":     -1.2,
	"concerns":    -1.2,
	"worried":     -1.5,
	"worry":       -1.5,
	"worries":     -1.5,
	"downgrade":   -2.2,
	"downgraded":  -2.2,
	"downgrades":  -2.2,
	"miss":        -1.8,
	"misses":      -1.8,
	"missed":      -1.8,
	"lawsuit":     -1.8,
	"probe":       -1.4,
	"fine":        -1.0,
	"fined":       -1.4,
	"layoff":      -2.0,
	"layoffs":     -2.0,
	"cut":         -1.2,
	"cuts":        -1.2,
	"debt":        -1.0,
	"inflation":   -1.0,
	"recession":   -2.4,
	"slowdown":    -1.6,
	"bad":         -1.3,
	"poor":        -1.4,
	"warning":     -1.5,
	"warns":       -1.6,
	"warned":      -1.6,

	// strong negative
	"plunge":     -3.0,
	"plunges":    -3.0,
	"plunged":    -3.0,
	"crash":      -3.4,
	"crashes":    -3.4,
	"crashed":    -3.4,
	"collapse":   -3.2,
	"collapses":  -3.2,
	"collapsed":  -3.2,
	"tumble":     -2.6,
	"tumbles":    -2.6,
	"tumbled":    -2.6,
	"plummet":    -3.2,
	"plummets":   -3.2,
	"plummeted":  -3.2,
	"bankruptcy": -3.4,
	"bankrupt":   -3.4,
	"fraud":      -3.0,
	"scandal":    -2.6,
	"default":    -2.4,
	"crisis":     -2.6,
	"meltdown":   -3.0,
}

// negators flip the valence of the following lexicon word.
var negators = map[string]bool{
	"not":     true,
	"no":      true,
	"never":   true,
	"without": true,
	"neither": true,
	"nor":     true,
	"isnt":    true,
	"isn't":   true,
	"wasnt":   true,
	"wasn't":  true,
	"dont":    true,
	"don't":   true,
	"doesnt":  true,
	"doesn't": true,
	"didnt":   true,
	"didn't":  true,
	"cant":    true,
	"can't":   true,
	"wont":    true,
	"won't":   true,
}

// boosters scale the valence of the following lexicon word.
var boosters = map[string]float64{
	"very":          1.3,
	"extremely":     1.5,
	"hugely":        1.4,
	"massively":     1.4,
	"significantly": 1.3,
	"sharply":       1.3,
	"strongly":      1.3,
	"slightly":      0.7,
	"somewhat":      0.8,
	"barely":        0.6,
	"marginally":    0.7,
	"modestly":      0.8,
}
