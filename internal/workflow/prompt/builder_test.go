package prompt

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lecture-tranquille-api/internal/domain/entity"
)

const prohibition = "INTERDICTIONS ABSOLUES : pas de violence, pas de contenu sexuel, pas de propos effrayants, haineux ou inappropriés pour des enfants"

func build(t *testing.T, req Request) Prompt {
	t.Helper()
	p, err := NewBuilder(nil).Build(context.Background(), req)
	require.NoError(t, err)
	return p
}

func TestSystemPromptCarriesProhibitionForEveryMode(t *testing.T) {
	for _, band := range entity.AgeBands() {
		for _, mode := range entity.ContentModes() {
			p := build(t, Request{AgeBand: band, Mode: mode, Input: "les étoiles"})
			assert.Contains(t, p.System, prohibition)
			assert.Contains(t, p.System, "pour des enfants de "+band.Label+".")
			assert.Contains(t, p.System, "Longueur cible : "+band.LengthGuideline)
			assert.True(t, strings.HasSuffix(p.System, "Type de contenu demandé : "+mode.Label()))
		}
	}
}

func TestUserPromptPerMode(t *testing.T) {
	band := entity.AgeBandByLevel("CE1")

	p := build(t, Request{AgeBand: band, Mode: entity.ContentModeStory, Input: "un chat qui vole"})
	assert.Equal(t, "Écris une histoire douce et imaginative à partir de cette idée : un chat qui vole", p.User)

	p = build(t, Request{AgeBand: band, Mode: entity.ContentModeSleepMeditation, Input: "la mer"})
	assert.Equal(t, "Écris une méditation calme et apaisante pour aider un enfant à s'endormir, inspirée par : la mer. Le texte sera lu par un parent à voix douce.", p.User)

	p = build(t, Request{AgeBand: band, Mode: entity.ContentModeScienceExplainer, Input: "la pluie"})
	assert.Equal(t, "Explique de façon simple et concrète, avec des exemples du quotidien : la pluie", p.User)
}

func TestAmendmentRewritesWholeText(t *testing.T) {
	prior := "Il était une fois un petit renard {curieux}."
	p := build(t, Request{
		AgeBand:   entity.AgeBandByLevel("CE2"),
		Mode:      entity.ContentModeSleepMeditation,
		Input:     "ajoute une chouette",
		PriorText: prior,
	})

	assert.True(t, strings.HasPrefix(p.User, "Voici un texte existant :\n\n"+prior+"\n\n"))
	assert.Contains(t, p.User, "Modifie ce texte selon cette instruction : ajoute une chouette")
	assert.True(t, strings.HasSuffix(p.User, "Réécris le texte complet en appliquant la modification demandée, en gardant le même style et la même longueur."))
	assert.Contains(t, p.System, prohibition)
	assert.Contains(t, p.System, "Méditation pour dormir")
}

func TestInvalidBandAndModeFallBack(t *testing.T) {
	p := build(t, Request{AgeBand: entity.AgeBand{Level: "CM2", Label: "10–11 ans"}, Mode: "poème", Input: "x"})
	assert.Contains(t, p.System, "pour des enfants de 6–7 ans.")
	assert.Contains(t, p.System, "Longueur cible : 100 à 150 mots")
	assert.Contains(t, p.System, "Type de contenu demandé : Histoire")
	assert.True(t, strings.HasPrefix(p.User, "Écris une histoire"))
}

func TestBandResolvedFromLevelOrLabel(t *testing.T) {
	p := build(t, Request{AgeBand: entity.AgeBand{Level: "CP"}, Mode: entity.ContentModeStory, Input: "un ours"})
	assert.Contains(t, p.System, "pour des enfants de 6–7 ans.")
	assert.Contains(t, p.System, "Longueur cible : 100 à 150 mots")

	ce2 := entity.AgeBandByLevel("CE2")
	p = build(t, Request{AgeBand: entity.AgeBand{Label: ce2.Label}, Mode: entity.ContentModeStory, Input: "un ours"})
	assert.Contains(t, p.System, "pour des enfants de "+ce2.Label+".")
	assert.Contains(t, p.System, "Longueur cible : "+ce2.LengthGuideline)
}

func TestPromptIDFor(t *testing.T) {
	assert.Equal(t, PromptStoryV1, PromptIDFor(Request{Mode: entity.ContentModeStory}))
	assert.Equal(t, PromptSleepMeditationV1, PromptIDFor(Request{Mode: entity.ContentModeSleepMeditation}))
	assert.Equal(t, PromptScienceExplainerV1, PromptIDFor(Request{Mode: entity.ContentModeScienceExplainer}))
	assert.Equal(t, PromptAmendmentV1, PromptIDFor(Request{Mode: entity.ContentModeStory, PriorText: "texte"}))
}

func TestRegistryCachesTemplates(t *testing.T) {
	r := NewRegistry()
	a, err := r.ChatTemplate(PromptStoryV1)
	require.NoError(t, err)
	b, err := r.ChatTemplate(PromptStoryV1)
	require.NoError(t, err)
	assert.Same(t, a, b)

	_, err = r.ChatTemplate("unknown")
	assert.Error(t, err)
}

func TestMessages(t *testing.T) {
	msgs := Prompt{System: "s", User: "u"}.Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, "s", msgs[0].Content)
	assert.Equal(t, "u", msgs[1].Content)
}
