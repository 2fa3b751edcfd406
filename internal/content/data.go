package content

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v2"

	"github.com/Bitlatte/folio/internal/model"
)

// ProfileFile is the name of the profile data file inside the data directory.
const ProfileFile = "profile.yaml"

// Data is the structured, non-markdown part of a site.
type Data struct {
	Profile         model.Profile         `yaml:"profile"`
	SkillCategories []model.SkillCategory `yaml:"skillCategories"`
}

// loadData reads the profile data file. A missing file yields empty data so
// themes fall back to their placeholder text.
func (l *Loader) loadData() (Data, error) {
	var data Data
	filename := filepath.Join(l.dataDir, ProfileFile)

	yamlFile, err := os.ReadFile(filename)
	if os.IsNotExist(err) {
		l.logger.Warn("profile data not found, using theme defaults", "file", filename)
		return data, nil
	}
	if err != nil {
		return data, fmt.Errorf("error reading data file %s: %w", filename, err)
	}

	if err := yaml.Unmarshal(yamlFile, &data); err != nil {
		return data, fmt.Errorf("error unmarshalling data file %s: %w", filename, err)
	}

	// Skills without a name have nothing to render.
	for i := range data.SkillCategories {
		skills := data.SkillCategories[i].Skills[:0]
		for _, s := range data.SkillCategories[i].Skills {
			if s.Name != "" {
				skills = append(skills, s)
			}
		}
		data.SkillCategories[i].Skills = skills
	}
	return data, nil
}
