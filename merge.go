package localsync

// merge layers next onto base and returns the result. Where both sides are
// JSON objects the merge recurses per key; everywhere else next replaces
// base, so arrays and scalars are overwritten wholesale. Neither input is
// mutated.
func merge(base, next any) any {
	bm, bok := base.(map[string]any)
	nm, nok := next.(map[string]any)
	if !bok || !nok {
		return next
	}

	out := make(map[string]any, len(bm)+len(nm))
	for k, v := range bm {
		out[k] = v
	}
	for k, v := range nm {
		if cur, ok := out[k]; ok {
			out[k] = merge(cur, v)
		} else {
			out[k] = v
		}
	}
	return out
}
