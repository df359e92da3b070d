package main

import (
	"context"
	"flag"
	"log"
	"os"

	"driven-coach-be/internal/repository/implementation"
	"driven-coach-be/internal/repository/specification"
	"driven-coach-be/pkg/database"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

// Prints every prompt template stored for one question, for checking what
// the engine will actually send to the model.
func main() {
	weekNumber := flag.Int("week", 1, "week number")
	questionNumber := flag.Int("question", 1, "question number")
	flag.Parse()

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

	ctx := context.Background()

	week, err := implementation.NewWeekRepository(db).FindOne(ctx, specification.ByWeekNumber{Number: *weekNumber})
	if err != nil || week == nil {
		log.Fatalf("Error: week %d not found: %v", *weekNumber, err)
	}

	questions, err := implementation.NewQuestionRepository(db).FindAll(ctx, specification.ByWeekId{WeekId: week.Id})
	if err != nil {
		log.Fatal("Error loading questions:", err)
	}

	for _, q := range questions {
		if q.Number != *questionNumber {
			continue
		}

		color.Cyan("Week %d, Question %d: %s", week.Number, q.Number, q.Text)
		color.White("max_iterations=%d requires_validation=%v resolved_scenarios=%v", q.MaxIterations, q.RequiresValidation, q.ResolvedScenarios)

		templates, err := implementation.NewPromptTemplateRepository(db).FindAll(ctx, specification.ByQuestionIds{QuestionIds: []uuid.UUID{q.Id}})
		if err != nil {
			log.Fatal("Error loading templates:", err)
		}
		for _, t := range templates {
			if t.Scenario != "" {
				color.Green("\n--- %s [%s] ---", t.Kind, t.Scenario)
			} else {
				color.Green("\n--- %s ---", t.Kind)
			}
			color.White("%s", t.Text)
		}
		return
	}

	log.Fatalf("Error: question %d not found in week %d", *questionNumber, *weekNumber)
}
