// internal/assistant/context.go
package assistant

import (
	"fmt"
	"sort"
	"strings"

	"skillpulse/internal/languages"
	"skillpulse/internal/model"
)

// Number of languages summarized in the assistant context.
const contextTopLanguages = 5

// NoRepositoriesAnswer is returned, without calling the completion endpoint,
// when the user has nothing synced yet.
const NoRepositoriesAnswer = "I couldn't find any repositories in your account. " +
	"Please connect your GitHub account first to analyze your code."

const personaPreamble = `You are SkillPulse AI, an intelligent assistant that helps developers understand their GitHub projects, generate relevant interview questions, and suggest project ideas.

You have access to the user's repository information. Use this to provide personalized, actionable insights.`

const capabilities = `**Your capabilities:**
1. **Interview Questions**: Generate technical interview questions based on the languages, frameworks, and technologies found in their repos. Cover topics like data structures, algorithms, system design, and technology-specific questions.

2. **Project Ideas**: Suggest new project ideas that:
   - Build upon their existing skill set and technologies
   - Challenge them to learn complementary technologies
   - Are practical and portfolio-worthy
   - Match their current experience level

3. **Code Analysis**: Analyze patterns across their projects and provide insights about their coding style, preferred technologies, and areas for growth.

When answering:
- Be specific and reference actual repository names when relevant
- For interview questions: Generate 5-10 questions with varying difficulty levels based on their tech stack
- For project ideas: Suggest 3-5 concrete project ideas with brief descriptions
- Highlight patterns you notice across their projects
- Provide actionable, personalized insights
- Be conversational but informative`

// BuildContext renders the user's repository snapshot into the grounding
// document sent as the system message on every assistant request. No length
// cap is applied; with very large repository sets the document grows with
// the input.
func BuildContext(repos []model.Repository) string {
	repoLangs := make([]map[string]int, len(repos))
	for i, r := range repos {
		repoLangs[i] = r.Languages
	}

	top := languages.Top(repoLangs, contextTopLanguages)
	topParts := make([]string, len(top))
	for i, e := range top {
		topParts[i] = fmt.Sprintf("%s (%d repos)", e.Name, e.Count)
	}

	blocks := make([]string, len(repos))
	for i, r := range repos {
		blocks[i] = repoBlock(r)
	}

	var b strings.Builder
	b.WriteString(personaPreamble)
	b.WriteString("\n\n**User's Repository Overview:**\n")
	fmt.Fprintf(&b, "Total repositories: %d\n", len(repos))
	fmt.Fprintf(&b, "Top languages: %s\n", strings.Join(topParts, ", "))
	b.WriteString("\n**Repositories:**\n")
	b.WriteString(strings.Join(blocks, "\n\n"))
	b.WriteString("\n\n")
	b.WriteString(capabilities)
	return b.String()
}

// repoBlock renders one repository: name, description, languages (falling
// back to the reported primary language, then "Unknown"), topics, stars.
func repoBlock(r model.Repository) string {
	desc := r.Description
	if desc == "" {
		desc = "No description"
	}

	langs := sortedLanguageNames(r.Languages)
	languageList := strings.Join(langs, ", ")
	if languageList == "" {
		languageList = r.PrimaryLanguage
	}
	if languageList == "" {
		languageList = "Unknown"
	}

	topics := strings.Join(r.Topics, ", ")
	if topics == "" {
		topics = "none"
	}

	return fmt.Sprintf("- **%s**: %s\n  Languages: %s\n  Topics: %s\n  Stars: %d",
		r.Name, desc, languageList, topics, r.Stars)
}

func sortedLanguageNames(langs map[string]int) []string {
	names := make([]string, 0, len(langs))
	for name := range langs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
