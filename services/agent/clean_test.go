package agent

import "testing"

func TestCleanResponse(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "instruction tokens stripped",
			in:   "<s>[INST] We open at 9 AM on weekdays. [/INST]</s>",
			want: "We open at 9 AM on weekdays.",
		},
		{
			name: "assistant prefix stripped",
			in:   "Assistant: Our next free slot is at 2 PM.",
			want: "Our next free slot is at 2 PM.",
		},
		{
			name: "chatty prefix stripped",
			in:   "Sure! I can book that table for you right away.",
			want: "I can book that table for you right away.",
		},
		{
			name: "missing terminal punctuation added",
			in:   "How many people will be joining",
			want: "How many people will be joining?",
		},
		{
			name: "markdown emphasis removed",
			in:   "We offer **haircuts** and `beard trims` daily.",
			want: "We offer haircuts and beard trims daily.",
		},
		{
			name: "repeated punctuation collapsed",
			in:   "See you tomorrow!!!",
			want: "See you tomorrow!",
		},
		{
			name: "empty input",
			in:   "",
			want: "",
		},
		{
			name: "garbage becomes safe reply",
			in:   "a.",
			want: "I understand. How else can I assist you today?",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanResponse(tt.in); got != tt.want {
				t.Errorf("CleanResponse(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
