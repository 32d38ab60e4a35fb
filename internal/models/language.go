package models

// Language is one entry of the supported language table.
type Language struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

var languageTable = []Language{
	{Code: "en", Name: "English"},
	{Code: "es", Name: "Spanish"},
	{Code: "fr", Name: "French"},
	{Code: "de", Name: "German"},
	{Code: "it", Name: "Italian"},
	{Code: "ja", Name: "Japanese"},
	{Code: "ko", Name: "Korean"},
	{Code: "zh", Name: "Chinese (Simplified)"},
	{Code: "zh-TW", Name: "Chinese (Traditional)"},
	{Code: "ar", Name: "Arabic"},
	{Code: "hi", Name: "Hindi"},
	{Code: "ru", Name: "Russian"},
	{Code: "pt", Name: "Portuguese"},
	{Code: "tr", Name: "Turkish"},
}

// LanguageList returns the supported languages in display order.
func LanguageList() []Language {
	out := make([]Language, len(languageTable))
	copy(out, languageTable)
	return out
}

// Languages returns the supported languages keyed by code.
func Languages() map[string]string {
	out := make(map[string]string, len(languageTable))
	for _, l := range languageTable {
		out[l.Code] = l.Name
	}
	return out
}
