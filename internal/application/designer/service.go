package designer

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"

	"github.com/hitarthkothari9641-coder/vastu/internal/pkg/apperr"
)

const systemPersona = "You are an expert architect and interior designer named BuildBidBot. " +
	"Keep responses concise, helpful, creative, and professional. " +
	"When discussing designs, mention materials, estimated costs in INR, " +
	"color palettes, and space optimization tips. " +
	"If the user finalizes an idea, remind them they can use the " +
	"'Generate Image' button to see a visual render. " +
	"Use markdown formatting for better readability. " +
	"Always consider Indian construction standards and materials."

var stylePrompts = map[string]string{
	"photorealistic": "Professional architectural visualization, photorealistic, highly detailed, 8k resolution, natural lighting, ",
	"blueprint":      "Architectural blueprint style, technical drawing, blue and white color scheme, precise lines, measurements, ",
	"watercolor":     "Architectural watercolor painting, artistic, soft colors, elegant sketch, ",
	"modern":         "Modern minimalist interior design, clean lines, contemporary furniture, natural materials, ",
	"traditional":    "Traditional Indian architecture, ornate details, warm colors, cultural elements, ",
	"3d_render":      "Professional 3D architectural render, ray tracing, global illumination, cinematic lighting, ",
}

// Service proxies design requests to external model APIs. Keys are supplied
// per request by the caller and never stored.
type Service struct {
	GeminiURL string
	HFURL     string

	chat  *resty.Client
	image *resty.Client
}

func New(geminiURL, hfURL string) *Service {
	return &Service{
		GeminiURL: geminiURL,
		HFURL:     hfURL,
		chat:      resty.New().SetTimeout(30 * time.Second),
		image:     resty.New().SetTimeout(120 * time.Second),
	}
}

type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ChatInput struct {
	APIKey  string        `json:"gemini_api_key"`
	Prompt  string        `json:"prompt"`
	History []ChatMessage `json:"history"`
}

// Chat forwards a design conversation to Gemini, keeping the last ten turns of
// history as context.
func (s *Service) Chat(ctx context.Context, in ChatInput) (string, error) {
	if in.APIKey == "" || strings.TrimSpace(in.Prompt) == "" {
		return "", apperr.New(apperr.Validation, "API key and prompt are required")
	}

	var conversation strings.Builder
	fmt.Fprintf(&conversation, "System Persona: %s\n\n", systemPersona)
	history := in.History
	if len(history) > 10 {
		history = history[len(history)-10:]
	}
	for _, msg := range history {
		role := "Assistant"
		if msg.Role == "user" {
			role = "User"
		}
		fmt.Fprintf(&conversation, "%s: %s\n\n", role, msg.Content)
	}
	fmt.Fprintf(&conversation, "User: %s", in.Prompt)

	resp, err := s.chat.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetQueryParam("key", in.APIKey).
		SetBody(map[string]interface{}{
			"contents": []map[string]interface{}{
				{"parts": []map[string]string{{"text": conversation.String()}}},
			},
		}).
		Post(s.GeminiURL)
	if err != nil {
		return "", apperr.Wrap(apperr.Retryable, "Gemini API unreachable", err)
	}
	if resp.StatusCode() != 200 {
		detail := gjson.Get(resp.String(), "error.message").String()
		if detail == "" {
			detail = "Unknown error from Gemini"
		}
		return "", apperr.New(apperr.Retryable, "Gemini API Error: "+detail)
	}

	reply := gjson.Get(resp.String(), "candidates.0.content.parts.0.text").String()
	if reply == "" {
		return "", apperr.New(apperr.Retryable, "Empty response from Gemini")
	}
	return reply, nil
}

type ImageInput struct {
	APIKey string `json:"hf_api_key"`
	Prompt string `json:"prompt"`
	Style  string `json:"style"`
}

type ImageResult struct {
	Image         string `json:"image"`
	PromptUsed    string `json:"prompt_used"`
	EstimatedTime int    `json:"estimated_time,omitempty"`
}

// GenerateImage renders the prompt through Stable Diffusion XL on Hugging
// Face. A 503 from the upstream means the model is still loading and maps to a
// Retryable error carrying the upstream's estimated wait.
func (s *Service) GenerateImage(ctx context.Context, in ImageInput) (*ImageResult, error) {
	if in.APIKey == "" || strings.TrimSpace(in.Prompt) == "" {
		return nil, apperr.New(apperr.Validation, "HF token and prompt are required")
	}

	prefix, ok := stylePrompts[in.Style]
	if !ok {
		prefix = stylePrompts["photorealistic"]
	}
	enhanced := prefix + in.Prompt

	resp, err := s.image.R().
		SetContext(ctx).
		SetHeader("Authorization", "Bearer "+in.APIKey).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]interface{}{
			"inputs": enhanced,
			"parameters": map[string]interface{}{
				"num_inference_steps": 30,
				"guidance_scale":      7.5,
			},
		}).
		Post(s.HFURL)
	if err != nil {
		return nil, apperr.Wrap(apperr.Retryable, "Image generation upstream unreachable", err)
	}

	switch resp.StatusCode() {
	case 200:
		encoded := base64.StdEncoding.EncodeToString(resp.Body())
		return &ImageResult{
			Image:      "data:image/png;base64," + encoded,
			PromptUsed: enhanced,
		}, nil
	case 503:
		wait := int(gjson.GetBytes(resp.Body(), "estimated_time").Int())
		if wait == 0 {
			wait = 20
		}
		return &ImageResult{EstimatedTime: wait},
			apperr.New(apperr.Retryable, "Model is loading. Please wait 10-20 seconds and try again.")
	default:
		detail := gjson.GetBytes(resp.Body(), "error").String()
		if detail == "" {
			detail = "Unknown error from Hugging Face"
		}
		return nil, apperr.New(apperr.Internal, "Image Generation Error: "+detail)
	}
}

var promptSuggestions = map[string][]string{
	"living room": {
		"A %s living room with L-shaped sofa, wooden coffee table, ambient lighting, and indoor plants",
		"Open concept %s living room with floor-to-ceiling windows, minimalist furniture, and accent wall",
		"Cozy %s living room with bookshelf wall, sectional sofa, pendant lights, and jute rug",
	},
	"bedroom": {
		"A %s master bedroom with king-size bed, walk-in wardrobe, bedside tables, and soft lighting",
		"Luxurious %s bedroom with upholstered headboard, vanity area, and panoramic window",
		"Compact %s bedroom with space-saving furniture, murphy bed, and built-in storage",
	},
	"kitchen": {
		"A %s modular kitchen with island counter, chimney hood, and pendant lights",
		"L-shaped %s kitchen with granite countertop, backsplash tiles, and breakfast bar",
		"Open %s kitchen with dining area, wine rack, and smart appliances",
	},
	"bathroom": {
		"A %s bathroom with rain shower, floating vanity, and decorative tiles",
		"Spa-inspired %s bathroom with freestanding bathtub, natural stone, and greenery",
		"Compact %s bathroom with glass partition, wall-mounted fixtures, and LED mirror",
	},
	"office": {
		"A %s home office with standing desk, bookshelf, task lighting, and ergonomic chair",
		"Creative %s workspace with whiteboard wall, modular shelving, and indoor plants",
		"Minimalist %s office with clean desk setup, acoustic panels, and ambient lighting",
	},
	"exterior": {
		"A %s house exterior with landscaped garden, porch, and decorative facade",
		"%s villa exterior with swimming pool, outdoor seating, and pergola",
		"Two-story %s house with balcony, car porch, and boundary wall design",
	},
}

// SuggestPrompts returns canned prompt starters for a room type, interpolating
// the preferred style.
func (s *Service) SuggestPrompts(roomType, style string) []string {
	if style == "" {
		style = "modern"
	}
	templates, ok := promptSuggestions[roomType]
	if !ok {
		templates = promptSuggestions["living room"]
	}
	out := make([]string, 0, len(templates))
	for _, t := range templates {
		out = append(out, fmt.Sprintf(t, style))
	}
	return out
}
