package textkey

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalise(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"whitespace only", " \t\n ", ""},
		{"lower-cases", "DOSSIÊ", "dossie"},
		{"strips accents", "ação é crítica", "acao e critica"},
		{"removes punctuation", "Qual é o objetivo principal do Dossiê 007?", "qual e o objetivo principal do dossie 007"},
		{"collapses whitespace", "  muitos   espaços\n\tentre  ", "muitos espacos entre"},
		{"joins across removed punctuation", "auto-estima", "autoestima"},
		{"keeps digits and underscore", "módulo_2 (parte 3)", "modulo_2 parte 3"},
		{"cedilla", "Coração", "coracao"},
		{"dotted capital I", "İstanbul", "istanbul"},
		{"symbols dropped", "preço: R$ 50,00!", "preco r 5000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalise(tt.input))
		})
	}
}

func TestNormalise_Idempotent(t *testing.T) {
	inputs := []string{
		"Qual é o objetivo principal do Dossiê 007?",
		"İSTANBUL ǅemal",
		"Ｆｕｌｌｗｉｄｔｈ　ＴＥＸＴ",
		"é combining",
		"...!!!",
		"Tab\tand\nnewline",
		"ß straße",
		"日本語のテキスト",
	}

	for _, in := range inputs {
		once := Normalise(in)
		assert.Equal(t, once, Normalise(once), "input %q", in)
	}
}

func TestNormalise_CaseAndAccentInvariant(t *testing.T) {
	variants := []string{
		"Qual é o objetivo principal do Dossiê 007?",
		"qual e o objetivo principal do dossie 007",
		"QUAL É O OBJETIVO PRINCIPAL DO DOSSIÊ 007",
		"  Qual  é o objetivo, principal do Dossiê 007!!",
	}

	want := Normalise(variants[0])
	for _, v := range variants {
		assert.Equal(t, want, Normalise(v), "variant %q", v)
	}
}

func TestKeywords(t *testing.T) {
	got := Keywords("O que é a Ansiedade e como lidar com ela?", 3)
	assert.Equal(t, []string{"ansiedade", "como", "lidar"}, got)
}

func TestKeywords_NoneLongEnough(t *testing.T) {
	assert.Empty(t, Keywords("o que é a dor?", 3))
}
