package recipe

// Recipe keys. They double as the backend's dataset-type buckets.
const (
	SFT            = "sft"
	NLSQL          = "nl_sql"
	RAGQA          = "rag_qa"
	Classification = "classification"
	TextToCode     = "text_to_code"
	Multilingual   = "multilingual"
)

const defaultModel = "gemma3:1b"

var sftStyles = []string{
	"highly technical",
	"beginner-friendly",
	"problem-solving oriented",
	"conversational",
}

var ragDifficulties = []string{"easy", "medium", "hard"}

// Languages is the fixed option set of the multilingual language selects.
var Languages = []string{
	"Arabic", "Bengali", "Bulgarian", "Chinese", "Croatian",
	"Czech", "Danish", "Dutch", "English", "Finnish",
	"French", "German", "Greek", "Gujarati", "Hebrew",
	"Hindi", "Hungarian", "Indonesian", "Italian", "Japanese",
	"Kannada", "Korean", "Malay", "Malayalam", "Marathi",
	"Persian", "Polish", "Portuguese", "Punjabi", "Russian",
	"Spanish", "Swedish", "Tamil", "Telugu", "Turkish",
}

func modelField() FieldDescriptor {
	return FieldDescriptor{Name: "model", Label: "Model", Kind: KindText, Placeholder: defaultModel}
}

func outputNameField() FieldDescriptor {
	return FieldDescriptor{Name: "output_name", Label: "Output Name", Kind: KindText, Placeholder: "my_dataset"}
}

func temperatureField() FieldDescriptor {
	return FieldDescriptor{Name: "temperature", Label: "Temperature", Kind: KindNumber, Step: "0.1", Placeholder: "0.8"}
}

func numSamplesField() FieldDescriptor {
	return FieldDescriptor{Name: "num_samples", Label: "Number of Samples", Kind: KindNumber, Placeholder: "50"}
}

func numPairsField() FieldDescriptor {
	return FieldDescriptor{Name: "num_pairs", Label: "Number of Pairs", Kind: KindNumber, Placeholder: "10"}
}

func languageSelect(name, label string) FieldDescriptor {
	opts := make([]string, len(Languages))
	copy(opts, Languages)
	return FieldDescriptor{Name: name, Label: label, Kind: KindSelect, Options: opts}
}

// Registry returns every recipe the console knows, in display order.
// Each call builds a fresh copy so callers can never mutate the registry.
func Registry() []Recipe {
	return []Recipe{
		{
			Key:      SFT,
			Label:    "SFT Instruction Dataset",
			Endpoint: "/generate/sft",
			Fields: []FieldDescriptor{
				{Name: "topic", Label: "Topic", Kind: KindText, Placeholder: "Quantum Computing"},
				modelField(),
				{Name: "style", Label: "Style", Kind: KindSelect, Options: append([]string(nil), sftStyles...)},
				numPairsField(),
				{Name: "language", Label: "Language", Kind: KindText, Placeholder: "English"},
				temperatureField(),
				outputNameField(),
			},
		},
		{
			Key:      NLSQL,
			Label:    "NL → SQL Dataset",
			Endpoint: "/generate/nl_sql",
			Fields: []FieldDescriptor{
				{Name: "schema_file", Label: "Schema File (JSON)", Kind: KindFile, Accept: []string{".json"}},
				modelField(),
				numSamplesField(),
				outputNameField(),
			},
		},
		{
			Key:      RAGQA,
			Label:    "RAG-QA Dataset",
			Endpoint: "/generate/rag_qa",
			Fields: []FieldDescriptor{
				{Name: "context_file", Label: "Context File", Kind: KindFile, Accept: []string{".txt", ".pdf"}},
				modelField(),
				{Name: "difficulty", Label: "Difficulty", Kind: KindSelect, Options: append([]string(nil), ragDifficulties...)},
				numPairsField(),
				outputNameField(),
			},
		},
		{
			Key:      Classification,
			Label:    "Classification Dataset",
			Endpoint: "/generate/classification",
			Fields: []FieldDescriptor{
				{Name: "task_description", Label: "Task Description", Kind: KindTextArea, Placeholder: "Classify customer reviews by sentiment"},
				modelField(),
				numSamplesField(),
				outputNameField(),
			},
		},
		{
			Key:      TextToCode,
			Label:    "Text → Code Dataset",
			Endpoint: "/generate/text_to_code",
			Fields: []FieldDescriptor{
				{Name: "domain", Label: "Domain", Kind: KindText, Placeholder: "web scraping"},
				{Name: "programming_language", Label: "Programming Language", Kind: KindText, Placeholder: "Python"},
				modelField(),
				numSamplesField(),
				temperatureField(),
				outputNameField(),
			},
		},
		{
			Key:      Multilingual,
			Label:    "Multilingual Dataset",
			Endpoint: "/generate/multilingual",
			Fields: []FieldDescriptor{
				{Name: "topic", Label: "Topic", Kind: KindText, Placeholder: "Travel"},
				languageSelect("source_language", "Source Language"),
				languageSelect("destination_language", "Destination Language"),
				modelField(),
				numSamplesField(),
				temperatureField(),
				outputNameField(),
			},
		},
	}
}
