package llmref

import (
	"strings"
	"text/template"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// SamplePrompt is the user message used in every generated snippet.
const SamplePrompt = "Hello, world!"

// Snippet languages.
const (
	LangCurl       = "curl"
	LangPython     = "python"
	LangJavaScript = "javascript"
)

// Snippets holds illustrative request examples for one model. They are
// documentation, not validated against any provider SDK.
type Snippets struct {
	Curl       string `json:"curl"`
	Python     string `json:"python"`
	JavaScript string `json:"javascript"`
}

// Get returns the snippet for lang ("js" is accepted for JavaScript).
func (s Snippets) Get(lang string) (string, bool) {
	switch strings.ToLower(lang) {
	case LangCurl:
		return s.Curl, true
	case LangPython, "py":
		return s.Python, true
	case LangJavaScript, "js":
		return s.JavaScript, true
	}
	return "", false
}

const curlTemplate = `curl https://api.{{ lower .Provider }}.com/v1/chat/completions \
  -H "Content-Type: application/json" \
  -H "Authorization: Bearer $API_KEY" \
  -d '{
    "model": "{{ .APIString }}",
    "messages": [
      {
        "role": "user",
        "content": "{{ .Prompt }}"
      }
    ]
  }'`

const pythonTemplate = `import os
from {{ lower .Provider }} import {{ .Provider }}Client

client = {{ .Provider }}Client(
    api_key=os.environ.get("{{ upper .Provider }}_API_KEY"),
)

chat_completion = client.chat.completions.create(
    messages=[
        {
            "role": "user",
            "content": "{{ .Prompt }}",
        }
    ],
    model="{{ .APIString }}",
)

print(chat_completion.choices[0].message.content)`

const javascriptTemplate = `import { {{ .Provider }} } from "{{ lower .Provider }}";

const client = new {{ .Provider }}();

async function main() {
  const completion = await client.chat.completions.create({
    messages: [{ role: "user", content: "{{ .Prompt }}" }],
    model: "{{ .APIString }}",
  });

  console.log(completion.choices[0].message.content);
}

main();`

var snippetFuncs = template.FuncMap{
	"lower": func(s string) string { return cases.Lower(language.Und).String(s) },
	"upper": func(s string) string { return cases.Upper(language.Und).String(s) },
}

var (
	curlTmpl       = template.Must(template.New(LangCurl).Funcs(snippetFuncs).Parse(curlTemplate))
	pythonTmpl     = template.Must(template.New(LangPython).Funcs(snippetFuncs).Parse(pythonTemplate))
	javascriptTmpl = template.Must(template.New(LangJavaScript).Funcs(snippetFuncs).Parse(javascriptTemplate))
)

type snippetData struct {
	Provider  string
	APIString string
	Prompt    string
}

// GenerateSnippets renders the curl, Python and JavaScript examples for m.
// Values are interpolated verbatim; provider and API string are assumed to need
// no shell or string escaping.
func GenerateSnippets(m Model) Snippets {
	d := snippetData{Provider: m.Provider, APIString: m.APIString, Prompt: SamplePrompt}
	return Snippets{
		Curl:       render(curlTmpl, d),
		Python:     render(pythonTmpl, d),
		JavaScript: render(javascriptTmpl, d),
	}
}

// render cannot fail: the templates only reference fields of snippetData and
// total string functions.
func render(t *template.Template, d snippetData) string {
	var b strings.Builder
	if err := t.Execute(&b, d); err != nil {
		panic(err)
	}
	return b.String()
}
