package curriculum

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed seed.yaml
var seedYAML []byte

// seed is the parsed syllabus, set by init(). Never handed out directly.
var seed Curriculum

func init() {
	c, err := Parse(seedYAML)
	if err != nil {
		panic(fmt.Sprintf("curriculum: invalid seed data: %v", err))
	}
	seed = c
}

// Parse decodes a YAML syllabus and validates its shape.
func Parse(data []byte) (Curriculum, error) {
	var c Curriculum
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse curriculum: %w", err)
	}
	if err := Validate(c); err != nil {
		return nil, err
	}
	return c, nil
}

// Default returns a fresh copy of the seeded syllabus with nothing completed.
func Default() Curriculum {
	return seed.Clone()
}
