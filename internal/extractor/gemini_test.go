package extractor

import (
	"testing"

	"github.com/google/generative-ai-go/genai"
)

func TestCandidateText(t *testing.T) {
	candidate := func(parts ...genai.Part) *genai.GenerateContentResponse {
		return &genai.GenerateContentResponse{Candidates: []*genai.Candidate{
			{Content: &genai.Content{Role: "model", Parts: parts}},
		}}
	}
	cases := []struct {
		name    string
		resp    *genai.GenerateContentResponse
		want    string
		wantErr bool
	}{
		{name: "nil response", resp: nil, wantErr: true},
		{name: "no candidates", resp: &genai.GenerateContentResponse{}, wantErr: true},
		{name: "nil content", resp: &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{}}}, wantErr: true},
		{
			name:    "only non-text parts",
			resp:    candidate(genai.Blob{MIMEType: "image/png", Data: []byte{0x89}}, genai.FunctionCall{Name: "rate"}),
			wantErr: true,
		},
		{
			name: "joins text parts",
			resp: candidate(genai.Text("```json\n"), genai.Blob{MIMEType: "image/png"}, genai.Text(`{"Accuracy":{"score":4}}`), genai.Text("\n```")),
			want: "```json\n{\"Accuracy\":{\"score\":4}}\n```",
		},
		{
			name: "first candidate only",
			resp: &genai.GenerateContentResponse{Candidates: []*genai.Candidate{
				{Content: &genai.Content{Parts: []genai.Part{genai.Text("first")}}},
				{Content: &genai.Content{Parts: []genai.Part{genai.Text("second")}}},
			}},
			want: "first",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := candidateText(tc.resp)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %q", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("got %q, want %q", got, tc.want)
			}
		})
	}
}
