package main

import (
	"log"
	"os"
	"strings"

	"driven-coach-be/internal/constant"
	"driven-coach-be/internal/model"
	"driven-coach-be/pkg/database"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

const week1Recap = `Week 1 of DRIVEN introduced the program and focused on choosing a job search goal that fits your strengths, interests, and current situation. The videos walked through how to weigh different types of work, and the exercise asked you to write down one concrete job search goal for the coming weeks.`

const week1Exercise = `Exercise 1 asked you to pick one job search goal and write down the reasons it matters to you. A clear goal makes the rest of the program concrete: every later week builds on the goal you set here.`

type questionSeed struct {
	number             int
	text               string
	maxIterations      int
	requiresValidation bool
	resolvedScenarios  []string
	templates          map[string]string // key: kind or kind:scenario
}

func main() {
	// Load Environment Variables
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	color.Cyan("Seeding Week 1 coaching content...")

	week := model.Week{
		Number:         1,
		Title:          "Getting Started",
		WelcomeMessage: "Welcome to Week 1! This week is all about picking a job search goal that fits you. Let's talk through what you took away from the videos and the exercise.",
		OutroMessage:   "Thank you for completing Week 1! Great job working through the first week's materials.",
	}

	var existing model.Week
	if err := db.Where("number = ?", week.Number).First(&existing).Error; err == nil {
		color.Yellow("Week %d already exists, skipping...", week.Number)
		return
	}
	if err := db.Create(&week).Error; err != nil {
		log.Fatal("Error creating week:", err)
	}

	blocks := []model.ContentBlock{
		{WeekId: week.Id, Name: "week recap", Text: week1Recap},
		{WeekId: week.Id, Name: "exercise recap", Text: week1Exercise},
	}
	for _, b := range blocks {
		if err := db.Create(&b).Error; err != nil {
			log.Fatal("Error creating content block:", err)
		}
	}

	for _, q := range week1Questions() {
		seedQuestion(db, week.Id, q)
		color.Green("Seeded question %d: %s", q.number, q.text)
	}

	color.Cyan("Week 1 seeding completed!")
}

func seedQuestion(db *gorm.DB, weekId uuid.UUID, q questionSeed) {
	question := model.Question{
		WeekId:             weekId,
		Number:             q.number,
		Text:               q.text,
		MaxIterations:      q.maxIterations,
		RequiresValidation: q.requiresValidation,
		ResolvedScenarios:  q.resolvedScenarios,
	}
	if err := db.Create(&question).Error; err != nil {
		log.Fatal("Error creating question:", err)
	}

	for key, text := range q.templates {
		kind, scenario := key, ""
		if idx := strings.Index(key, ":"); idx >= 0 {
			kind, scenario = key[:idx], key[idx+1:]
		}
		template := model.PromptTemplate{
			QuestionId: question.Id,
			Kind:       kind,
			Scenario:   scenario,
			Text:       text,
		}
		if err := db.Create(&template).Error; err != nil {
			log.Fatal("Error creating prompt template:", err)
		}
	}
}

func week1Questions() []questionSeed {
	return []questionSeed{
		{
			number:            1,
			text:              "What was one main idea you took away?",
			maxIterations:     3,
			resolvedScenarios: []string{"SCENARIO_1"},
			templates: map[string]string{
				constant.PromptKindClassifier: `Based on the user's response to "What was one main idea you took away?" from the Week 1 recap, determine which scenario applies:

Scenario 1: User provides a main takeaway idea (e.g., mentions learning something, understanding a concept, taking away an idea).
Scenario 2: User expresses confusion or does not provide a main takeaway idea (e.g., "I don't know", "I didn't have meaningful takeaways", "I'm confused").
Scenario 3: User does not provide a response that is meaningful to the question asked (e.g., completely unrelated response).

Respond with ONLY one of these: "SCENARIO_1", "SCENARIO_2", or "SCENARIO_3".`,
				constant.PromptKindScenarioResponse + ":SCENARIO_1": `Imagine you are a trained career coach helping adults with mental health challenges find jobs. The user's name is {name}. The user has provided a main takeaway idea from Week 1's material.

Respond by congratulating the user for their engagement with the material. Be warm and encouraging.`,
				constant.PromptKindScenarioResponse + ":SCENARIO_2": `Imagine you are a trained career coach helping adults with mental health challenges find jobs. The user's name is {name}. The user expresses confusion or did not have meaningful takeaways from Week 1.

Provide a summary of some of the main ideas in Week 1 content:

{week recap}

Be supportive and help them understand the key concepts.`,
				constant.PromptKindScenarioResponse + ":SCENARIO_3": `Imagine you are a trained career coach helping adults with mental health challenges find jobs. The user's name is {name}. The user did not provide a response that is meaningful to the question asked.

Kindly ask the user to reconsider the question and provide any needed clarification. Be patient and understanding.`,
			},
		},
		{
			number:             2,
			text:               "What job search goal did you write down, and why did you pick it?",
			maxIterations:      5,
			requiresValidation: true,
			resolvedScenarios:  []string{"SCENARIO_1"},
			templates: map[string]string{
				constant.PromptKindClassifier: `Based on the user's response to "What job search goal did you write down, and why did you pick it?", determine which scenario applies:

Scenario 1: User names a concrete goal and gives at least one reason for picking it.
Scenario 2: User did not complete the exercise or has no goal yet (e.g., "I didn't do it", "I couldn't decide").
Scenario 3: User's response is irrelevant to the course material (e.g., completely unrelated response).

Respond with ONLY one of these: "SCENARIO_1", "SCENARIO_2", or "SCENARIO_3".`,
				constant.PromptKindScenarioResponse + ":SCENARIO_1": `Imagine you are a trained career coach helping adults with mental health challenges find jobs. The user's name is {name}. The user names a concrete job search goal and their reasons for picking it.

Provide positive reassurance and reflect their reasons back to them:

{exercise recap}

Be warm and encouraging.`,
				constant.PromptKindScenarioResponse + ":SCENARIO_2": `Imagine you are a trained career coach helping adults with mental health challenges find jobs. The user's name is {name}. The user did not complete the exercise or has no goal yet.

Reinforce why a concrete goal matters and gently prompt the user to pick one before continuing:

{exercise recap}

Be supportive and encouraging.`,
				constant.PromptKindScenarioResponse + ":SCENARIO_3": `Imagine you are a trained career coach helping adults with mental health challenges find jobs. The user's name is {name}. The user's response is irrelevant.

Repeat the question, and move onto the next one if 2 more tries are unsuccessful. Be patient and understanding.`,
				constant.PromptKindValidation: `The user was asked: "What job search goal did you write down, and why did you pick it?"

Check whether the user's answer includes BOTH a concrete goal AND at least one reason for picking it.

Reply in exactly this format:
COMPLETE: Yes or No
MISSING: [list what is missing, or "None"]`,
			},
		},
		{
			number:            3,
			text:              "How was your experience completing this exercise?",
			maxIterations:     3,
			resolvedScenarios: []string{"SCENARIO_1", "SCENARIO_2"},
			templates: map[string]string{
				constant.PromptKindClassifier: `Based on the user's response to "How was your experience completing this exercise?", determine which scenario applies:

Scenario 1: User shares a general positive or neutral reflection on their experience (e.g., "I enjoyed it", "It was helpful", "It was okay", "It was fine").
Scenario 2: User gives a negative response (e.g., "I didn't like it", "It was difficult", "It was frustrating").
Scenario 3: User did not complete the exercise or gives a response that is irrelevant (e.g., "I didn't do it", completely unrelated response).

Respond with ONLY one of these: "SCENARIO_1", "SCENARIO_2", or "SCENARIO_3".`,
				constant.PromptKindScenarioResponse + ":SCENARIO_1": `Imagine you are a trained career coach helping adults with mental health challenges find jobs. The user's name is {name}. The user shares a general positive or neutral reflection on their experience completing the exercise.

Respond with a short summary + reinforcement of Week 1 themes:

{week recap}
{exercise recap}

Be warm and encouraging.`,
				constant.PromptKindScenarioResponse + ":SCENARIO_2": `Imagine you are a trained career coach helping adults with mental health challenges find jobs. The user's name is {name}. The user gives a negative response about completing the exercise.

Provide positive reassurance that addresses the user's concern while emphasizing the importance of the exercises:

{week recap}

Be empathetic and supportive.`,
				constant.PromptKindScenarioResponse + ":SCENARIO_3": `Imagine you are a trained career coach helping adults with mental health challenges find jobs. The user's name is {name}. The user did not complete the exercise or gives a response that is irrelevant.

Prompt the user to go back and watch the videos and do the exercise for Week 1 about choosing a job search goal. Be encouraging.`,
			},
		},
	}
}
