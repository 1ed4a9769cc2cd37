package dto

type SpeechReq struct {
	Text       string `json:"text"`
	VoiceStyle string `json:"voiceStyle"`
	VoiceModel string `json:"voiceModel"`
	Provider   string `json:"provider"`
}

type SpeechResData struct {
	AudioUrl string `json:"audioUrl"`
}
