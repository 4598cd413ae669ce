package ai

import (
	"fmt"
	"strings"

	"github.com/abhisek/mastermind/internal/settings"
)

const planSystemPrompt = `You are a senior examiner for postgraduate anaesthesia examinations. You write realistic, detailed revision timetables for candidates.`

const quizSystemPrompt = `You are a senior examiner writing Single Best Answer (SBA) questions for postgraduate anaesthesia examinations.`

// DefaultWeakness is used when the candidate leaves the weaknesses box empty.
const DefaultWeakness = "General revision"

func buildPlanUserMessage(in PlanInput, maxTopics int) string {
	exam := in.ExamType.Label()
	weaknesses := strings.TrimSpace(in.WeaknessNotes)
	if weaknesses == "" {
		weaknesses = DefaultWeakness
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("Create a highly detailed %d-week revision timetable for a candidate sitting the %s.\n", in.Weeks, exam))

	b.WriteString("\nContext:\n")
	b.WriteString(fmt.Sprintf("- Exam: %s\n", exam))
	b.WriteString(fmt.Sprintf("- Daily Study Time: %d hours.\n", in.HoursPerDay))
	b.WriteString(fmt.Sprintf("- Specific User Weaknesses: %s.\n", weaknesses))
	b.WriteString(fmt.Sprintf("- Priority Syllabus Areas (Incomplete): %s\n", priorityTopics(in.IncompleteTopics, maxTopics)))

	b.WriteString("\nInstructions:\n")
	b.WriteString("- Focus heavily on the incomplete topics listed.\n")
	b.WriteString("- Structure sessions to include 'Active Recall', 'SBA Practice', and 'Core Reading'.\n")
	b.WriteString("- Ensure Physics and Physiology are intermixed with Clinical topics to prevent burnout.\n")
	if in.ExamType.IsEDAIC() {
		b.WriteString("- For EDAIC, emphasize Basic Sciences heavily as Part 1 is detail-oriented.\n")
	} else {
		b.WriteString("- For FRCA, emphasize clinical application of basic sciences.\n")
	}
	b.WriteString("\nOutput strictly in JSON format matching the schema.")

	return b.String()
}

// priorityTopics joins at most max topics. A longer list ends with
// "... (and others)". max <= 0 means no cap.
func priorityTopics(topics []string, max int) string {
	if len(topics) == 0 {
		return "None, every topic is marked complete. Plan consolidation and mock exams."
	}
	if max <= 0 || len(topics) <= max {
		return strings.Join(topics, ", ") + "."
	}
	return strings.Join(topics[:max], ", ") + "... (and others)."
}

func buildQuizUserMessage(topic string, exam settings.ExamType, count, options int) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Generate %d high-yield Single Best Answer (SBA) questions for the %s.\n", count, exam.Label()))
	b.WriteString(fmt.Sprintf("Topic: %s.\n", topic))

	b.WriteString("\nStyle Guide:\n")
	if exam.IsEDAIC() {
		b.WriteString("- EDAIC style: Focus on physiological values, specific drug properties, and physics principles. High detail.\n")
	} else {
		b.WriteString("- FRCA style: Clinical vignettes followed by basic science justification.\n")
	}
	b.WriteString(fmt.Sprintf("- %d options per question (%s-%s).\n", options, "A", string(rune('A'+options-1))))
	b.WriteString("- correctIndex is the zero-based position of the single best answer.\n")
	b.WriteString("- Provide a detailed explanation for the correct answer, referencing guidelines where applicable.\n")
	b.WriteString("\nOutput strictly in JSON format.")

	return b.String()
}
