package fitness

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"github.com/myrjola/fitcoach/internal/errors"
	"gopkg.in/yaml.v3"
)

//go:embed tips.yaml
var tipsYAML []byte

const defaultTipKey = "default"

// Tip holds coaching cues for one exercise.
type Tip struct {
	Exercise       string   `yaml:"-"               json:"exercise"`
	Setup          string   `yaml:"setup"           json:"setup"`
	Execution      string   `yaml:"execution"       json:"execution"`
	Breathing      string   `yaml:"breathing"       json:"breathing"`
	CommonMistakes []string `yaml:"common_mistakes" json:"common_mistakes"`
	Progressions   []string `yaml:"progressions"    json:"progressions"`
}

//nolint:gochecknoglobals // parsed once from the embedded file.
var loadTips = sync.OnceValues(func() (map[string]Tip, error) {
	return parseTips(tipsYAML)
})

func parseTips(data []byte) (map[string]Tip, error) {
	var tips map[string]Tip
	if err := yaml.Unmarshal(data, &tips); err != nil {
		return nil, errors.Wrap(err, "unmarshal tips")
	}
	if _, ok := tips[defaultTipKey]; !ok {
		return nil, errors.New("tips are missing the default entry")
	}
	return tips, nil
}

// TipFor returns the coaching cues for exercise, falling back to generic advice.
func TipFor(exercise string) (Tip, error) {
	tips, err := loadTips()
	if err != nil {
		return Tip{}, errors.Wrap(err, "load tips")
	}
	tip, ok := tips[exercise]
	if !ok {
		tip = tips[defaultTipKey]
	}
	tip.Exercise = exercise
	tip.CommonMistakes = append([]string(nil), tip.CommonMistakes...)
	tip.Progressions = append([]string(nil), tip.Progressions...)
	return tip, nil
}

// Markdown renders the tip as a markdown document.
func (t Tip) Markdown() string {
	var b strings.Builder
	_, _ = fmt.Fprintf(&b, "## %s\n\n", t.Exercise)
	_, _ = fmt.Fprintf(&b, "**Setup:** %s\n\n", t.Setup)
	_, _ = fmt.Fprintf(&b, "**Execution:** %s\n\n", t.Execution)
	_, _ = fmt.Fprintf(&b, "**Breathing:** %s\n\n", t.Breathing)
	b.WriteString("### Common mistakes\n\n")
	for _, m := range t.CommonMistakes {
		_, _ = fmt.Fprintf(&b, "- %s\n", m)
	}
	b.WriteString("\n### Progressions\n\n")
	for i, p := range t.Progressions {
		_, _ = fmt.Fprintf(&b, "%d. %s\n", i+1, p)
	}
	return b.String()
}
