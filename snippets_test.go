package llmref

import (
	"strings"
	"testing"
)

func TestGenerateSnippets(t *testing.T) {
	s := GenerateSnippets(Model{Provider: "OpenAI", APIString: "gpt-4o"})

	for _, want := range []string{
		"curl https://api.openai.com/v1/chat/completions \\\n",
		`"model": "gpt-4o"`,
		`"content": "Hello, world!"`,
		`-H "Authorization: Bearer $API_KEY"`,
	} {
		if !strings.Contains(s.Curl, want) {
			t.Errorf("curl snippet missing %q:\n%s", want, s.Curl)
		}
	}

	for _, want := range []string{
		"from openai import OpenAIClient",
		`api_key=os.environ.get("OPENAI_API_KEY")`,
		`model="gpt-4o"`,
	} {
		if !strings.Contains(s.Python, want) {
			t.Errorf("python snippet missing %q:\n%s", want, s.Python)
		}
	}

	for _, want := range []string{
		`import { OpenAI } from "openai";`,
		"const client = new OpenAI();",
		`model: "gpt-4o",`,
		`content: "Hello, world!"`,
	} {
		if !strings.Contains(s.JavaScript, want) {
			t.Errorf("javascript snippet missing %q:\n%s", want, s.JavaScript)
		}
	}
}

func TestGenerateSnippetsNoEscaping(t *testing.T) {
	s := GenerateSnippets(Model{Provider: "Acme", APIString: "a<b>&c"})
	if !strings.Contains(s.Curl, `"model": "a<b>&c"`) {
		t.Errorf("values must be interpolated verbatim:\n%s", s.Curl)
	}
}

func TestSnippetsGet(t *testing.T) {
	s := Snippets{Curl: "c", Python: "p", JavaScript: "j"}
	cases := map[string]string{"curl": "c", "Python": "p", "py": "p", "javascript": "j", "js": "j"}
	for lang, want := range cases {
		if got, ok := s.Get(lang); !ok || got != want {
			t.Errorf("Get(%q) = %q, %v", lang, got, ok)
		}
	}
	if _, ok := s.Get("ruby"); ok {
		t.Error("Get(ruby) should not be found")
	}
}
