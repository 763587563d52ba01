package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInterpret(t *testing.T) {
	t.Run("object embedded in prose", func(t *testing.T) {
		raw := `prefix {"summary":"a","analysis":"b","score":95,"verdict":"x","category":"Science"} suffix`
		got := Interpret(raw)

		require.True(t, got.Parsed)
		assert.Equal(t, 95, got.Score)
		assert.Equal(t, "Science", got.Category)
		// The embedded "x" verdict is discarded in favor of the threshold rule.
		assert.Equal(t, VerdictCredible, got.Verdict)
		assert.Equal(t, "a", got.Summary)
		assert.Equal(t, "b", got.Reasoning)
	})

	t.Run("no braces at all", func(t *testing.T) {
		got := Interpret("the model refused to answer")

		assert.False(t, got.Parsed)
		assert.Equal(t, 0, got.Score)
		assert.Equal(t, VerdictError, got.Verdict)
		assert.Equal(t, "AI did not return a proper summary.", got.Summary)
		assert.Equal(t, "the model refused to answer", got.Reasoning)
		assert.Equal(t, DefaultCategory, got.Category)
	})

	t.Run("empty raw text", func(t *testing.T) {
		got := Interpret("")

		assert.False(t, got.Parsed)
		assert.Equal(t, VerdictError, got.Verdict)
		assert.Equal(t, "The AI response was empty.", got.Reasoning)
	})

	t.Run("prose braces before the real object", func(t *testing.T) {
		raw := `thinking {not json here} and then {"summary":"s","analysis":"r","score":42,"verdict":"Credible","category":"Health"}`
		got := Interpret(raw)

		require.True(t, got.Parsed)
		assert.Equal(t, 42, got.Score)
		assert.Equal(t, VerdictNotCredible, got.Verdict)
		assert.Equal(t, "Health", got.Category)
	})

	t.Run("markdown code fence around the object", func(t *testing.T) {
		raw := "```json\n{\"summary\":\"s\",\"analysis\":\"r\",\"score\":91,\"verdict\":\"Credible\",\"category\":\"Politics\"}\n```"
		got := Interpret(raw)

		require.True(t, got.Parsed)
		assert.Equal(t, 91, got.Score)
		assert.Equal(t, VerdictCredible, got.Verdict)
	})

	t.Run("missing fields get defaults", func(t *testing.T) {
		got := Interpret(`{"score":50}`)

		require.True(t, got.Parsed)
		assert.Equal(t, "No summary generated.", got.Summary)
		assert.Equal(t, "No analysis generated.", got.Reasoning)
		assert.Equal(t, DefaultCategory, got.Category)
		assert.Equal(t, VerdictNotCredible, got.Verdict)
	})

	t.Run("missing score counts as zero", func(t *testing.T) {
		got := Interpret(`{"summary":"s","analysis":"r"}`)

		require.True(t, got.Parsed)
		assert.Equal(t, 0, got.Score)
		assert.Equal(t, VerdictNotCredible, got.Verdict)
	})

	t.Run("unparseable score yields error verdict", func(t *testing.T) {
		got := Interpret(`{"summary":"s","score":"very high"}`)

		require.True(t, got.Parsed)
		assert.Equal(t, 0, got.Score)
		assert.Equal(t, VerdictError, got.Verdict)
	})

	t.Run("quoted numeric score is coerced", func(t *testing.T) {
		got := Interpret(`{"score":"93"}`)

		require.True(t, got.Parsed)
		assert.Equal(t, 93, got.Score)
		assert.Equal(t, VerdictCredible, got.Verdict)
	})

	t.Run("verdict reproducible from stored score", func(t *testing.T) {
		// 89.7 rounds to 90 for storage, so the verdict must be Credible:
		// re-running the threshold rule on the persisted score always gives
		// back the persisted verdict.
		got := Interpret(`{"score":89.7}`)
		require.True(t, got.Parsed)
		assert.Equal(t, 90, got.Score)
		assert.Equal(t, VerdictCredible, got.Verdict)
		assert.Equal(t, got.Verdict, VerdictFor(float64(got.Score)))

		got = Interpret(`{"score":89.4}`)
		require.True(t, got.Parsed)
		assert.Equal(t, 89, got.Score)
		assert.Equal(t, VerdictNotCredible, got.Verdict)
		assert.Equal(t, got.Verdict, VerdictFor(float64(got.Score)))
	})

	t.Run("out of range score is clamped for storage", func(t *testing.T) {
		got := Interpret(`{"score":250}`)

		require.True(t, got.Parsed)
		assert.Equal(t, 100, got.Score)
		assert.Equal(t, VerdictCredible, got.Verdict)
	})

	t.Run("cleaning applied to parsed fields", func(t *testing.T) {
		got := Interpret(`{"summary":"**bold** claim [1]","analysis":"1. Source: **Reuters** [2]","score":10}`)

		require.True(t, got.Parsed)
		assert.Equal(t, "bold claim", got.Summary)
		assert.Equal(t, "1. Source: Reuters", got.Reasoning)
	})
}

func TestTruncateForModel(t *testing.T) {
	t.Run("short input unchanged", func(t *testing.T) {
		assert.Equal(t, "hello", TruncateForModel("hello"))
	})

	t.Run("long input truncated with marker", func(t *testing.T) {
		in := make([]rune, 5000)
		for i := range in {
			in[i] = 'a'
		}
		got := TruncateForModel(string(in))

		runes := []rune(got)
		assert.Len(t, runes, MaxPromptChars+len([]rune(TruncationMarker)))
		assert.Equal(t, TruncationMarker, string(runes[MaxPromptChars:]))
	})

	t.Run("exactly at cap unchanged", func(t *testing.T) {
		in := make([]rune, MaxPromptChars)
		for i := range in {
			in[i] = 'b'
		}
		assert.Equal(t, string(in), TruncateForModel(string(in)))
	})
}
