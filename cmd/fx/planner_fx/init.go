package planner_fx

import (
	"log"
	"os"

	"go.uber.org/fx"

	"roamio/pkg/utils"
)

var Module = fx.Provide(providePlannerClient)

// providePlannerClient selects the model backend: AI_PROVIDER=openai
// switches to OpenAI, anything else means Gemini.
func providePlannerClient() utils.PlannerClientInterface {
	if os.Getenv("AI_PROVIDER") == "openai" {
		return utils.NewOpenAIPlannerClient(os.Getenv("OPENAI_API_KEY"), os.Getenv("OPENAI_MODEL"))
	}

	client, err := utils.NewGeminiPlannerClient(os.Getenv("GEMINI_API_KEY"), os.Getenv("GEMINI_MODEL"))
	if err != nil {
		log.Fatalf("Failed to create planner client: %v", err)
	}
	return client
}
