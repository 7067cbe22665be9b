package services

import (
	"context"
	"regexp"
	"strings"

	"github.com/Tmy-andy/profile/internal/models"
)

// AddSkill trims the input and appends it to the skills list. Empty input
// and exact duplicates (case-sensitive) are no-ops. Reports whether the list
// changed.
func (sess *SettingsSession) AddSkill(text string) bool {
	text = strings.TrimSpace(text)
	if text == "" {
		return false
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	for _, s := range sess.doc.Skills {
		if s == text {
			return false
		}
	}
	sess.doc.Skills = append(sess.doc.Skills, text)
	return true
}

// RemoveSkill removes the first exact match. Reports whether anything was
// removed.
func (sess *SettingsSession) RemoveSkill(text string) bool {
	sess.mu.Lock()
	defer sess.mu.Unlock()

	for i, s := range sess.doc.Skills {
		if s == text {
			sess.doc.Skills = append(sess.doc.Skills[:i], sess.doc.Skills[i+1:]...)
			return true
		}
	}
	return false
}

// ClearSkills empties the skills list in memory.
func (sess *SettingsSession) ClearSkills() {
	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.doc.Skills = []string{}
}

// Skills returns a copy of the current skills list.
func (sess *SettingsSession) Skills() []string {
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return append([]string{}, sess.doc.Skills...)
}

// SaveSkills merge-writes the skills slice.
func (sess *SettingsSession) SaveSkills(ctx context.Context) error {
	return sess.saveSlices(ctx, "SaveSkills",
		"Skills updated successfully", "Failed to save skills",
		models.SliceSkills)
}

// softSkillNames drives the display-side soft/technical split. Matching is
// substring, case-insensitive, same as the settings page.
var softSkillNames = []string{
	"Leadership", "Teamwork", "Communication", "Problem Solving",
	"Critical Thinking", "Time Management", "Project Management",
	"Public Speaking", "Negotiation", "Mentoring", "Collaboration",
	"Adaptability", "Creativity", "Analytical Thinking", "Decision Making",
	"Conflict Resolution", "Emotional Intelligence", "Customer Service",
	"Presentation", "Training", "Planning", "Organization",
}

var softSkillPattern = regexp.MustCompile(`(?i)\b(management|leadership|communication|speaking|thinking|skills?|ability)\b`)

// IsSoftSkill classifies a skill string for display grouping. Pure and
// stateless; the classification is never persisted.
func IsSoftSkill(skill string) bool {
	lower := strings.ToLower(skill)
	for _, name := range softSkillNames {
		if strings.Contains(lower, strings.ToLower(name)) {
			return true
		}
	}
	return softSkillPattern.MatchString(skill)
}
