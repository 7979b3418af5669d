package models

import "strconv"

// FormatSalary renders the salary line exactly as the product displays it:
// both bounds -> "500,000 - 800,000 FCFA", lower bound only ->
// "À partir de 500,000 FCFA", neither -> "Salaire non spécifié".
func FormatSalary(min, max *int) string {
	switch {
	case min != nil && max != nil:
		return groupThousands(*min) + " - " + groupThousands(*max) + " FCFA"
	case min != nil:
		return "À partir de " + groupThousands(*min) + " FCFA"
	default:
		return "Salaire non spécifié"
	}
}

func groupThousands(n int) string {
	s := strconv.Itoa(n)
	neg := false
	if len(s) > 0 && s[0] == '-' {
		neg = true
		s = s[1:]
	}

	out := make([]byte, 0, len(s)+len(s)/3)
	for i, c := range []byte(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, c)
	}
	if neg {
		return "-" + string(out)
	}
	return string(out)
}
