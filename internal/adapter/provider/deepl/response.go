package deepl

import "encoding/json"

// apiResponse is the DeepL translate endpoint response.
type apiResponse struct {
	Translations []apiTranslation `json:"translations"`
	// Some accounts return alternatives at the top level instead of
	// per-translation.
	Alternatives []apiAlternative `json:"alternatives"`
}

// apiTranslation is a single translated segment.
type apiTranslation struct {
	Text         string           `json:"text"`
	Alternatives []apiAlternative `json:"alternatives"`
}

// apiAlternative is either a bare string or an object with a "text" field,
// depending on the API plan. UnmarshalJSON accepts both.
type apiAlternative struct {
	Text string
}

func (a *apiAlternative) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		a.Text = s
		return nil
	}
	var obj struct {
		Text string `json:"text"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	a.Text = obj.Text
	return nil
}
