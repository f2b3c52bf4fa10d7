// Package main implements a standalone seed script that populates a running
// storefront instance with realistic session data: favorites, a cart, a
// couple of delivery addresses, a saved card, and one placed order. It talks
// to the service over its HTTP API, so whatever it seeds also lands in Redis
// through the normal write path.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"
)

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// --------------------------------------------------------------------------
// HTTP helpers
// --------------------------------------------------------------------------

func doJSON(method, url string, body any) (map[string]any, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(respBody))
	}

	var result map[string]any
	if len(respBody) > 0 {
		if err := json.Unmarshal(respBody, &result); err != nil {
			return nil, fmt.Errorf("unmarshal response: %w", err)
		}
	}
	return result, nil
}

func httpPost(url string, body any) (map[string]any, error) {
	return doJSON(http.MethodPost, url, body)
}

// --------------------------------------------------------------------------
// Seed data
// --------------------------------------------------------------------------

type product struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Image       string  `json:"image"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	Color       string  `json:"color,omitempty"`
}

var catalog = []product{
	{ID: "sofa-verona", Name: "Verona 3-Seater Sofa", Price: 28990, Category: "Sofas", Color: "Slate Gray",
		Image:       "https://cdn.furniview.example/products/sofa-verona.png",
		Description: "Deep-seat three-seater with kiln-dried hardwood frame."},
	{ID: "chair-acacia", Name: "Acacia Accent Chair", Price: 7490, Category: "Chairs", Color: "Natural",
		Image:       "https://cdn.furniview.example/products/chair-acacia.png",
		Description: "Solid acacia frame with woven rattan backrest."},
	{ID: "lamp-halcyon", Name: "Halcyon Arc Lamp", Price: 4250, Category: "Lighting",
		Image:       "https://cdn.furniview.example/products/lamp-halcyon.png",
		Description: "Full-arc floor lamp with a weighted marble base."},
	{ID: "table-batanes", Name: "Batanes Coffee Table", Price: 10990, Category: "Tables", Color: "Walnut",
		Image:       "https://cdn.furniview.example/products/table-batanes.png",
		Description: "Low-profile coffee table with a floating top."},
	{ID: "shelf-cordova", Name: "Cordova Ladder Shelf", Price: 5690, Category: "Storage",
		Image:       "https://cdn.furniview.example/products/shelf-cordova.png",
		Description: "Five-tier leaning shelf in powder-coated steel."},
}

func main() {
	base := getEnv("STOREFRONT_URL", "http://localhost:8080")
	log.Printf("seeding storefront at %s", base)

	// Wait for the service to come up.
	var ready bool
	for i := 0; i < 10; i++ {
		if resp, err := http.Get(base + "/health/ready"); err == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				ready = true
				break
			}
		}
		time.Sleep(time.Second)
	}
	if !ready {
		log.Fatalf("storefront not ready at %s", base)
	}

	// Favorites: save the full catalog.
	for _, p := range catalog {
		if _, err := httpPost(base+"/api/v1/favorites", p); err != nil {
			log.Fatalf("seed favorite %s: %v", p.ID, err)
		}
	}
	log.Printf("seeded %d favorites", len(catalog))

	// Cart: two chairs and a lamp.
	for _, id := range []string{"chair-acacia", "chair-acacia", "lamp-halcyon"} {
		for _, p := range catalog {
			if p.ID != id {
				continue
			}
			if _, err := httpPost(base+"/api/v1/cart/items", p); err != nil {
				log.Fatalf("seed cart item %s: %v", p.ID, err)
			}
		}
	}
	log.Printf("seeded cart")

	// A second delivery address, selected.
	resp, err := httpPost(base+"/api/v1/addresses", map[string]any{
		"name":    "Maria Santos",
		"phone":   "0917 555 4477",
		"address": "Unit 8B, 45 Katipunan Avenue, Quezon City",
	})
	if err != nil {
		log.Fatalf("seed address: %v", err)
	}
	addresses, _ := resp["data"].([]any)
	if len(addresses) > 0 {
		if last, ok := addresses[len(addresses)-1].(map[string]any); ok {
			if id, ok := last["id"].(string); ok {
				if _, err := httpPost(fmt.Sprintf("%s/api/v1/addresses/%s/select", base, id), nil); err != nil {
					log.Fatalf("select address: %v", err)
				}
			}
		}
	}
	log.Printf("seeded and selected delivery address")

	// One saved card (becomes the selected payment method).
	if _, err := httpPost(base+"/api/v1/payment-methods", map[string]any{
		"number": "5200 8282 8282 8210",
		"expiry": "09/28",
		"cvv":    "4321",
	}); err != nil {
		log.Fatalf("seed card: %v", err)
	}
	log.Printf("seeded payment card")

	// Place an order from the seeded cart so order history is non-empty.
	if _, err := httpPost(base+"/api/v1/checkout", nil); err != nil {
		log.Fatalf("seed order: %v", err)
	}
	log.Printf("placed seed order")

	log.Printf("seeding complete")
}
