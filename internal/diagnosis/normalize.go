package diagnosis

import "strings"

// synonyms maps common phrasings to the store's canonical symptom tokens.
// No value may itself be a key, otherwise Normalize stops being idempotent.
var synonyms = map[string]string{
	"shortness of breath":  "breathlessness",
	"shortness breath":     "breathlessness",
	"difficulty breathing": "breathlessness",
	"runny nose":           "runny_nose",
	"stuffy nose":          "congestion",
	"stomach pain":         "stomach_pain",
	"belly pain":           "abdominal_pain",
	"chest pain":           "chest_pain",
	"joint pain":           "joint_pain",
	"high fever":           "high_fever",
	"mild fever":           "mild_fever",
	"back pain":            "back_pain",
	"neck pain":            "neck_pain",
	"abdominal pain":       "abdominal_pain",
	"skin rash":            "skin_rash",
	"skin itching":         "itching",
	"itchy skin":           "itching",
	"fever":                "high_fever",
	"coughing":             "cough",
	"head ache":            "headache",
	"nauseous":             "nausea",
	"vomit":                "vomiting",
	"diarrhea":             "diarrhoea",
	"constipated":          "constipation",
	"dizzy":                "dizziness",
	"fatigued":             "fatigue",
	"tired":                "fatigue",
}

// Normalize maps a free-text symptom to the store vocabulary: trim, lowercase, synonym
// lookup, otherwise whitespace runs become underscores. Unknown tokens pass through.
func Normalize(raw string) string {
	fields := strings.Fields(strings.ToLower(raw))
	if len(fields) == 0 {
		return ""
	}
	if canonical, ok := synonyms[strings.Join(fields, " ")]; ok {
		return canonical
	}
	return strings.Join(fields, "_")
}

// NormalizeAll normalizes every input, dropping blanks and duplicates while keeping
// first-seen order.
func NormalizeAll(raw []string) []string {
	out := make([]string, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	for _, s := range raw {
		n := Normalize(s)
		if n == "" {
			continue
		}
		if _, dup := seen[n]; dup {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}

func toSet(names []string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	return set
}
