package handlers

import (
	"fmt"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"sufra/config"
)

// HandleSuggestMealDescription asks Gemini for a short menu description for
// a meal (admin only).
// POST /api/v1/admin/meals/suggest-description
func HandleSuggestMealDescription(c *fiber.Ctx) error {
	var body struct {
		Name string   `json:"name"`
		Tags []string `json:"tags"`
	}

	if err := c.BodyParser(&body); err != nil || body.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Meal name is required",
		})
	}

	ctx := c.Context()
	client, err := genai.NewClient(ctx, option.WithAPIKey(config.AppConfig.GeminiAPIKey))
	if err != nil {
		log.Printf("Error creating Gemini client: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Failed to initialize Gemini client",
		})
	}
	defer client.Close()

	prompt := fmt.Sprintf("Write a single appetizing menu description (max 30 words) for a restaurant dish called %q.", body.Name)
	if len(body.Tags) > 0 {
		prompt += " Style hints: " + strings.Join(body.Tags, ", ") + "."
	}

	model := client.GenerativeModel("gemini-1.5-pro-latest")
	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		log.Printf("Error generating content: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Failed to generate description",
		})
	}

	var description string
	if len(resp.Candidates) > 0 && resp.Candidates[0].Content != nil {
		for _, part := range resp.Candidates[0].Content.Parts {
			if text, ok := part.(genai.Text); ok {
				description += string(text)
			}
		}
	}
	description = strings.TrimSpace(description)
	if description == "" {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Model returned no text",
		})
	}

	return c.JSON(fiber.Map{
		"status": "success",
		"data":   fiber.Map{"description": description},
	})
}
