package escape

import "testing"

func TestHTML(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"<script>alert(1)</script>", "&lt;script&gt;alert(1)&lt;/script&gt;"},
		{`Tom & "Jerry"`, "Tom &amp; &#34;Jerry&#34;"},
		{"line one\r\nline two", "line one<br/>line two"},
		{"plain", "plain"},
	}
	for _, tt := range tests {
		if got := HTML(tt.in); got != tt.want {
			t.Errorf("HTML(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestLaTeX(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`50% of $5 & #1`, `50\% of \$5 \& \#1`},
		{`C:\path`, `C:\textbackslash{}path`},
		{`{x}_y`, `\{x\}\_y`},
		{`a~b^c`, `a\textasciitilde{}b\^{}c`},
		{`<b>`, `\textless{}b\textgreater{}`},
	}
	for _, tt := range tests {
		if got := LaTeX(tt.in); got != tt.want {
			t.Errorf("LaTeX(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestPlain(t *testing.T) {
	if got := Plain("a\x00b\x07c\r\nd\te"); got != "abc\nd\te" {
		t.Errorf("Plain stripped wrong characters: %q", got)
	}
}
