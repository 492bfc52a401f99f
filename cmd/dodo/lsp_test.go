package main

import (
	"encoding/json"
	"os"
	"slices"
	"strings"
	"testing"
)

func TestRunCLIStartsLSPAndExitsOnEOF(t *testing.T) {
	origStdin := os.Stdin
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close write pipe: %v", err)
	}
	os.Stdin = r
	defer func() {
		os.Stdin = origStdin
		_ = r.Close()
	}()

	if err := runCLI([]string{"dodo", "lsp"}); err != nil {
		t.Fatalf("runCLI lsp failed: %v", err)
	}
}

func TestDiagnosticsForSourceWithoutErrors(t *testing.T) {
	diags := diagnosticsForSource("scalar x\nx = 5\nprint x\n")
	if len(diags) != 0 {
		t.Fatalf("expected no diagnostics, got %#v", diags)
	}
}

func TestDiagnosticsForSourceWithParseErrors(t *testing.T) {
	diags := diagnosticsForSource("scalar x\nvector y[\nprint x\nx = )\n")
	if len(diags) != 2 {
		t.Fatalf("expected two diagnostics, got %d", len(diags))
	}
	first := diags[0]
	if first["severity"] != severityError {
		t.Fatalf("expected error severity, got %#v", first["severity"])
	}
	message, ok := first["message"].(string)
	if !ok || !strings.Contains(message, "expected size") {
		t.Fatalf("unexpected diagnostic message %#v", first["message"])
	}
	if strings.Contains(message, "-->") {
		t.Fatalf("diagnostic should not carry a code frame: %q", message)
	}
	start := first["range"].(map[string]any)["start"].(map[string]any)
	if start["line"] != 1 {
		t.Fatalf("expected zero-based line 1, got %#v", start["line"])
	}
}

func TestDiagnosticsForSourceIncludesWarnings(t *testing.T) {
	diags := diagnosticsForSource("print x\n")
	if len(diags) != 1 {
		t.Fatalf("expected one warning, got %#v", diags)
	}
	if diags[0]["severity"] != severityWarning {
		t.Fatalf("expected warning severity, got %#v", diags[0]["severity"])
	}
}

func TestCompletionItemsAreSortedAndCategorized(t *testing.T) {
	items := completionItems("vector velocity[3]\n")
	if len(items) == 0 {
		t.Fatalf("expected completion items")
	}

	labels := make([]string, 0, len(items))
	for _, item := range items {
		label, ok := item["label"].(string)
		if !ok {
			t.Fatalf("unexpected completion label: %#v", item["label"])
		}
		labels = append(labels, label)
	}
	if !slices.IsSorted(labels) {
		t.Fatalf("expected sorted completion labels, got %v", labels)
	}

	keyword := findCompletionItem(t, items, "print")
	if keyword["detail"] != "keyword" {
		t.Fatalf("expected keyword detail, got %#v", keyword["detail"])
	}
	if keyword["kind"] != completionKindKeyword {
		t.Fatalf("expected keyword kind, got %#v", keyword["kind"])
	}

	variable := findCompletionItem(t, items, "velocity")
	if variable["detail"] != "vector" {
		t.Fatalf("expected vector detail, got %#v", variable["detail"])
	}
	if variable["kind"] != completionKindVariable {
		t.Fatalf("expected variable kind, got %#v", variable["kind"])
	}
}

func TestHandleMessageDidOpenPublishesDiagnostics(t *testing.T) {
	server := &lspServer{docs: make(map[string]string)}
	params := map[string]any{
		"textDocument": map[string]any{
			"uri":  "file:///tmp/test.dodo",
			"text": "vector y[\n",
		},
	}
	payload, err := json.Marshal(params)
	if err != nil {
		t.Fatalf("marshal params: %v", err)
	}

	messages := server.handleMessage(lspInboundMessage{
		JSONRPC: "2.0",
		Method:  "textDocument/didOpen",
		Params:  payload,
	})
	if len(messages) != 1 {
		t.Fatalf("expected one publishDiagnostics notification, got %d", len(messages))
	}
	if messages[0].Method != "textDocument/publishDiagnostics" {
		t.Fatalf("unexpected method: %q", messages[0].Method)
	}
	paramsMap, ok := messages[0].Params.(map[string]any)
	if !ok {
		t.Fatalf("unexpected params payload: %#v", messages[0].Params)
	}
	diags, ok := paramsMap["diagnostics"].([]map[string]any)
	if !ok {
		t.Fatalf("unexpected diagnostics payload: %#v", paramsMap["diagnostics"])
	}
	if len(diags) == 0 {
		t.Fatalf("expected diagnostics for invalid source")
	}
	if server.docs["file:///tmp/test.dodo"] != "vector y[\n" {
		t.Fatalf("document was not stored")
	}
}

func TestHandleMessageHoverClassifiesWords(t *testing.T) {
	server := &lspServer{
		docs: map[string]string{
			"file:///tmp/test.dodo": "matrix grid[2, 2]\nprint grid\n",
		},
	}

	cases := []struct {
		line      int
		character int
		want      string
	}{
		{0, 2, "Dodo keyword"},
		{1, 8, "Dodo matrix variable"},
	}
	for _, tc := range cases {
		payload, err := json.Marshal(map[string]any{
			"textDocument": map[string]any{"uri": "file:///tmp/test.dodo"},
			"position":     map[string]any{"line": tc.line, "character": tc.character},
		})
		if err != nil {
			t.Fatalf("marshal params: %v", err)
		}
		id := json.RawMessage("1")
		messages := server.handleMessage(lspInboundMessage{
			JSONRPC: "2.0",
			ID:      &id,
			Method:  "textDocument/hover",
			Params:  payload,
		})
		if len(messages) != 1 {
			t.Fatalf("expected one hover response, got %d", len(messages))
		}
		result, ok := messages[0].Result.(map[string]any)
		if !ok {
			t.Fatalf("unexpected hover result: %#v", messages[0].Result)
		}
		contents := result["contents"].(map[string]any)
		if value := contents["value"].(string); !strings.Contains(value, tc.want) {
			t.Fatalf("expected %q in hover, got %q", tc.want, value)
		}
	}
}

func TestHandleMessageUnknownMethod(t *testing.T) {
	server := &lspServer{docs: make(map[string]string)}
	id := json.RawMessage("7")
	messages := server.handleMessage(lspInboundMessage{JSONRPC: "2.0", ID: &id, Method: "workspace/symbol"})
	if len(messages) != 1 || messages[0].Error == nil || messages[0].Error.Code != -32601 {
		t.Fatalf("expected method not found error, got %#v", messages)
	}
}

func TestWordAtPosition(t *testing.T) {
	source := "vector speed[3]\nprint speed * 2\n"
	if got := wordAtPosition(source, 1, 8); got != "speed" {
		t.Fatalf("expected speed, got %q", got)
	}
	if got := wordAtPosition(source, 1, 11); got != "speed" {
		t.Fatalf("expected word before cursor, got %q", got)
	}
	if got := wordAtPosition(source, 1, 12); got != "" {
		t.Fatalf("expected no word, got %q", got)
	}
	if got := wordAtPosition(source, 5, 0); got != "" {
		t.Fatalf("expected empty result past end, got %q", got)
	}
}

func findCompletionItem(t *testing.T, items []map[string]any, label string) map[string]any {
	t.Helper()
	for _, item := range items {
		if item["label"] == label {
			return item
		}
	}
	t.Fatalf("completion item %q not found", label)
	return nil
}
