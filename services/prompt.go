package services

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rpupo63/portfolio-backend/models"
)

const defaultOwnerName = "the developer"

// keySkillThreshold is the minimum proficiency listed under key technologies
const keySkillThreshold = 80

// PromptOptions personalizes the wording of the system prompt
type PromptOptions struct {
	OwnerName string
}

func (o PromptOptions) owner() string {
	if name := strings.TrimSpace(o.OwnerName); name != "" {
		return name
	}
	return defaultOwnerName
}

var summaryChecklist = []string{
	"Total professional experience",
	"Current role and company",
	"Key technologies and skills",
	"Notable projects",
	"Professional strengths",
	"Keep it exactly within the requested word limit",
}

// exampleQuestions is the catalog of framings the assistant is told it can answer.
// {name} is replaced with the owner's name.
var exampleQuestions = []string{
	`"What is {name}'s experience?" - Provide total experience and career overview`,
	`"What technologies does {name} know?" - List all technologies with proficiency levels`,
	`"What projects has {name} worked on?" - Describe projects with technologies and links`,
	`"What is {name}'s current role?" - Current position and company details`,
	`"What are {name}'s skills?" - Categorized skills with proficiency percentages`,
	`"Tell me about {name}'s career journey" - Chronological work experience`,
	`"What programming languages does {name} use?" - Focus on programming languages`,
	`"What frameworks does {name} know?" - List frameworks and libraries`,
	`"What is {name}'s expertise?" - Highlight strongest skills and areas`,
	`"What projects can I see?" - List projects with descriptions and links`,
	`"What is {name}'s background?" - Professional background and experience`,
	`"What tools does {name} use?" - Development tools and technologies`,
	`"What is {name}'s work experience?" - Detailed work history`,
	`"What are {name}'s achievements?" - Notable projects and accomplishments`,
	`"What is {name}'s professional profile?" - Complete professional summary`,
}

// BuildSystemPrompt renders the portfolio snapshot into the instruction given
// to the language model as its system message. Output depends only on its
// arguments.
func BuildSystemPrompt(pc PortfolioContext, opts PromptOptions) string {
	owner := opts.owner()
	var b strings.Builder

	fmt.Fprintf(&b, "You are a personal assistant for %s's software development portfolio. "+
		"You can ONLY answer questions about %s's experience, projects, and skills. "+
		"You must NOT answer questions about anything else.\n\n", owner, owner)
	fmt.Fprintf(&b, "Here is %s's information:\n\n", owner)
	fmt.Fprintf(&b, "TOTAL EXPERIENCE: %s (calculated from first job start date to current date)\n\n", pc.TotalExperience)

	b.WriteString("EXPERIENCES (in chronological order):\n")
	for i, exp := range chronological(pc.Experiences) {
		fmt.Fprintf(&b, "\n%d. %s at %s\n", i+1, exp.Title, exp.Company)
		fmt.Fprintf(&b, "   - Location: %s\n", exp.Location)
		fmt.Fprintf(&b, "   - Duration: %s to %s\n", isoDate(exp.StartDate), endLabel(exp))
		fmt.Fprintf(&b, "   - Current Position: %s\n", yesNo(exp.Current))
		fmt.Fprintf(&b, "   - Key Responsibilities: %s\n", strings.Join(exp.Description, ", "))
		fmt.Fprintf(&b, "   - Technologies Used: %s\n", strings.Join(exp.Technologies, ", "))
	}

	b.WriteString("\nPROJECTS (with details):\n")
	for i, project := range pc.Projects {
		fmt.Fprintf(&b, "\n%d. %s\n", i+1, project.Title)
		fmt.Fprintf(&b, "   - Description: %s\n", project.Description)
		fmt.Fprintf(&b, "   - Technologies: %s\n", strings.Join(project.Technologies, ", "))
		fmt.Fprintf(&b, "   - Category: %s\n", project.Category)
		fmt.Fprintf(&b, "   - GitHub Repository: %s\n", project.GithubURL)
		fmt.Fprintf(&b, "   - Live Demo: %s\n", project.LiveURL)
	}

	b.WriteString("\nSKILLS (organized by category):\n")
	for _, group := range groupSkills(pc.Skills) {
		fmt.Fprintf(&b, "\n%s:\n", group.category)
		for _, skill := range group.skills {
			fmt.Fprintf(&b, "   - %s: %d%%\n", skill.Name, skill.Proficiency)
		}
	}

	fmt.Fprintf(&b, "\nSUMMARY FORMAT FOR \"TELL ME ABOUT %s\" REQUESTS:\n", strings.ToUpper(owner))
	fmt.Fprintf(&b, "When asked for a summary about %s, structure your response to include:\n", owner)
	fmt.Fprintf(&b, "- Professional experience duration: %s\n", pc.TotalExperience)
	fmt.Fprintf(&b, "- Current role: %s\n", currentRole(chronological(pc.Experiences)))
	fmt.Fprintf(&b, "- Key technologies: %s\n", keyTechnologies(pc.Skills))
	fmt.Fprintf(&b, "- Notable projects: %s\n", notableProjects(pc.Projects))
	b.WriteString("- Professional focus: Full-stack development, modern web technologies, and innovative solutions\n")

	b.WriteString("\nIMPORTANT RULES:\n")
	fmt.Fprintf(&b, "1. ONLY answer questions about %s's experience, projects, and skills\n", owner)
	b.WriteString("2. If asked about anything else (weather, general knowledge, other people, etc.), politely decline and redirect to portfolio-related topics\n")
	b.WriteString("3. Be helpful and detailed when discussing the portfolio\n")
	b.WriteString("4. Use only the exact information provided above and never invent employers, dates, projects, or skills\n")
	b.WriteString("5. If you don't have specific information about something, say so clearly\n")
	b.WriteString("6. Keep responses concise but informative\n")
	b.WriteString("7. When asked about total experience or years of experience, provide the calculated total experience duration\n")
	fmt.Fprintf(&b, "8. When asked \"tell me about %s in 100 words\" or similar summary requests, provide a comprehensive overview including:\n", owner)
	for _, item := range summaryChecklist {
		b.WriteString("   - ")
		b.WriteString(item)
		b.WriteString("\n")
	}

	b.WriteString("\nCOMMON PORTFOLIO QUESTIONS YOU CAN ANSWER:")
	for _, q := range exampleQuestions {
		b.WriteString("\n- ")
		b.WriteString(strings.ReplaceAll(q, "{name}", owner))
	}

	return b.String()
}

// chronological returns a copy of experiences ordered oldest first
func chronological(experiences []*models.Experience) []*models.Experience {
	sorted := make([]*models.Experience, 0, len(experiences))
	for _, exp := range experiences {
		if exp != nil {
			sorted = append(sorted, exp)
		}
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].StartDate.Before(sorted[j].StartDate)
	})
	return sorted
}

type skillGroup struct {
	category models.SkillCategory
	skills   []*models.Skill
}

// groupSkills keeps categories in first-seen order and sorts each group by
// proficiency, highest first
func groupSkills(skills []*models.Skill) []skillGroup {
	var groups []skillGroup
	index := map[models.SkillCategory]int{}
	for _, skill := range skills {
		if skill == nil {
			continue
		}
		i, ok := index[skill.Category]
		if !ok {
			i = len(groups)
			index[skill.Category] = i
			groups = append(groups, skillGroup{category: skill.Category})
		}
		groups[i].skills = append(groups[i].skills, skill)
	}

	for _, group := range groups {
		sort.SliceStable(group.skills, func(i, j int) bool {
			return group.skills[i].Proficiency > group.skills[j].Proficiency
		})
	}
	return groups
}

func isoDate(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

func endLabel(exp *models.Experience) string {
	if exp.Current || exp.EndDate == nil {
		return "Present"
	}
	return isoDate(*exp.EndDate)
}

func yesNo(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}

// currentRole names the first current entry of an oldest-first list
func currentRole(experiences []*models.Experience) string {
	for _, exp := range experiences {
		if exp != nil && exp.Current {
			return fmt.Sprintf("%s at %s", exp.Title, exp.Company)
		}
	}
	return "Not specified"
}

func keyTechnologies(skills []*models.Skill) string {
	var names []string
	for _, skill := range skills {
		if skill != nil && skill.Proficiency >= keySkillThreshold {
			names = append(names, skill.Name)
		}
	}
	if len(names) == 0 {
		return "Various technologies"
	}
	return strings.Join(names, ", ")
}

func notableProjects(projects []*models.Project) string {
	var titles []string
	for _, project := range projects {
		if project == nil {
			continue
		}
		titles = append(titles, project.Title)
		if len(titles) == 2 {
			break
		}
	}
	if len(titles) == 0 {
		return "Multiple projects"
	}
	return strings.Join(titles, ", ")
}
