package protocol_test

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

func TestSchemas_ValidateSamples(t *testing.T) {
	compile := func(name string) *jsonschema.Schema {
		t.Helper()
		p := filepath.Join("..", "..", "schemas", name)
		s, err := jsonschema.Compile(p)
		if err != nil {
			t.Fatalf("compile %s: %v", name, err)
		}
		return s
	}

	validate := func(s *jsonschema.Schema, v any) {
		t.Helper()
		if err := s.Validate(v); err != nil {
			t.Fatalf("validate: %v", err)
		}
	}

	helloSchema := compile("hello.schema.json")
	welcomeSchema := compile("welcome.schema.json")
	chatSchema := compile("chat.schema.json")

	var hello any
	_ = json.Unmarshal([]byte(`{
	  "type":"HELLO",
	  "protocol_version":"1.0",
	  "player_id":"c56ced5c-5a4a-4d41-a723-6ef11a04c996"
	}`), &hello)
	validate(helloSchema, hello)

	var welcome any
	_ = json.Unmarshal([]byte(`{
	  "type":"WELCOME",
	  "protocol_version":"1.0",
	  "player_id":"c56ced5c-5a4a-4d41-a723-6ef11a04c996",
	  "world":"survival"
	}`), &welcome)
	validate(welcomeSchema, welcome)

	var chat any
	_ = json.Unmarshal([]byte(`{
	  "type":"CHAT",
	  "protocol_version":"1.0",
	  "player_id":"c56ced5c-5a4a-4d41-a723-6ef11a04c996",
	  "lines":["[Plots] Successfully merged 4 plots"]
	}`), &chat)
	validate(chatSchema, chat)
}
