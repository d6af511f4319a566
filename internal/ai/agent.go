package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go-tindahan/internal/inventory"
	"go-tindahan/internal/sales"
	"go-tindahan/internal/store"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// RunAgent answers a store owner's question with tool access to their own
// inventory and sales data. The agent never sees other tenants' accounts.
func RunAgent(dir *store.Directory, username, userMessage, apiKey string) (string, error) {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return "", err
	}
	defer client.Close()

	model := client.GenerativeModel("gemini-2.0-flash-001")

	today := time.Now().Format("2006-01-02")
	systemPrompt := fmt.Sprintf(`SYSTEM: Today is %s. You are the assistant for a sari-sari store POS.

	RULES:
	1. UPDATE: If a user asks to update a product price by NAME, do NOT ask them for the ID. Instead:
	   - Call 'check_inventory' to find the product ID (format "P1", "P2", ...).
	   - Call 'update_product_price' using that ID.

	2. READ: If a user asks for PRICE, COST, STOCK, or DETAILS of a product:
	   - Call 'check_inventory' and read the JSON to answer.

	3. RESTOCK: If the user asks what needs restocking, call 'check_low_stock'.

	4. SALES: If the user asks for sales, revenue or profit, use 'get_sales_report'.

	USER: %s`, today, userMessage)

	model.Tools = []*genai.Tool{
		{
			FunctionDeclarations: []*genai.FunctionDeclaration{
				{
					Name:        "check_inventory",
					Description: "Get the full inventory list. Use this to find ANY product details like ID, Name, Price, Cost, or Stock.",
				},
				{
					Name:        "check_low_stock",
					Description: "List products whose stock has fallen below their low-stock threshold.",
				},
				{
					Name:        "update_product_price",
					Description: "Update the selling price of a specific product using its ID (e.g. \"P3\")",
					Parameters: &genai.Schema{
						Type: genai.TypeObject,
						Properties: map[string]*genai.Schema{
							"product_id": {Type: genai.TypeString, Description: "ID of the product, e.g. \"P3\""},
							"new_price":  {Type: genai.TypeNumber, Description: "New selling price"},
						},
						Required: []string{"product_id", "new_price"},
					},
				},
				{
					Name:        "get_sales_report",
					Description: "Get revenue, profit and transaction count for a date range.",
					Parameters: &genai.Schema{
						Type: genai.TypeObject,
						Properties: map[string]*genai.Schema{
							"start_date": {Type: genai.TypeString, Description: "Start date (YYYY-MM-DD)"},
							"end_date":   {Type: genai.TypeString, Description: "End date (YYYY-MM-DD)"},
						},
						Required: []string{"start_date", "end_date"},
					},
				},
			},
		},
	}

	session := model.StartChat()

	resp, err := session.SendMessage(ctx, genai.Text(systemPrompt))
	if err != nil {
		return "", err
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return printResponse(resp), nil
	}

	for _, part := range resp.Candidates[0].Content.Parts {
		if funcCall, ok := part.(genai.FunctionCall); ok {
			switch funcCall.Name {
			case "check_inventory":
				items, err := dir.ViewInventory(username)
				if err != nil {
					return "", err
				}
				finalResp, err := session.SendMessage(ctx, inventoryToolResponse("check_inventory", items))
				if err != nil {
					return "", err
				}
				return handleRecursiveToolCalls(ctx, dir, username, session, finalResp)

			case "check_low_stock":
				items, err := dir.CheckLowStock(username)
				if err != nil {
					return "", err
				}
				finalResp, err := session.SendMessage(ctx, inventoryToolResponse("check_low_stock", items))
				if err != nil {
					return "", err
				}
				return printResponse(finalResp), nil

			case "update_product_price":
				return executeUpdatePrice(ctx, dir, username, session, funcCall)

			case "get_sales_report":
				return executeSalesReport(ctx, dir, username, session, funcCall)
			}
		}
	}

	return printResponse(resp), nil
}

// --- HELPER FUNCTIONS ---

// simpleProduct keeps the tool payload small for the model.
type simpleProduct struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Stock int     `json:"stock"`
	Price float64 `json:"price"`
	Cost  float64 `json:"cost"`
}

func inventoryToolResponse(name string, items []inventory.Item) genai.FunctionResponse {
	simpleList := make([]simpleProduct, 0, len(items))
	for _, item := range items {
		simpleList = append(simpleList, simpleProduct{
			ID:    item.ProductID,
			Name:  item.ProductName,
			Stock: item.Stock,
			Price: item.Price,
			Cost:  item.PurchasePrice,
		})
	}

	jsonBytes, _ := json.Marshal(simpleList)
	return genai.FunctionResponse{
		Name:     name,
		Response: map[string]interface{}{"inventory": string(jsonBytes)},
	}
}

func handleRecursiveToolCalls(ctx context.Context, dir *store.Directory, username string, session *genai.ChatSession, resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return printResponse(resp), nil
	}
	for _, part := range resp.Candidates[0].Content.Parts {
		if funcCall, ok := part.(genai.FunctionCall); ok {
			if funcCall.Name == "update_product_price" {
				return executeUpdatePrice(ctx, dir, username, session, funcCall)
			}
		}
	}
	return printResponse(resp), nil
}

func executeUpdatePrice(ctx context.Context, dir *store.Directory, username string, session *genai.ChatSession, funcCall genai.FunctionCall) (string, error) {
	args := funcCall.Args
	productID, _ := args["product_id"].(string)
	newPrice, _ := args["new_price"].(float64)

	msg := "Success"
	err := dir.UpdateInventoryItem(username, productID, inventory.ItemPatch{Price: &newPrice})
	if err != nil {
		msg = "Product ID not found"
	}

	finalResp, err := session.SendMessage(ctx, genai.FunctionResponse{
		Name:     "update_product_price",
		Response: map[string]interface{}{"status": msg, "new_price": newPrice},
	})
	if err != nil {
		return "", err
	}
	return printResponse(finalResp), nil
}

func executeSalesReport(ctx context.Context, dir *store.Directory, username string, session *genai.ChatSession, funcCall genai.FunctionCall) (string, error) {
	args := funcCall.Args
	startStr, _ := args["start_date"].(string)
	endStr, _ := args["end_date"].(string)

	start, err1 := time.Parse("2006-01-02", startStr)
	end, err2 := time.Parse("2006-01-02", endStr)
	if err1 != nil || err2 != nil {
		return "Error: Dates must be in YYYY-MM-DD format.", nil
	}
	end = end.Add(23*time.Hour + 59*time.Minute)

	// Metrics are computed under the directory read lock so a checkout
	// on another request can't race the scan.
	var revenue, profit float64
	var count int
	err := dir.ReadAccount(username, func(account *store.StoreAccount) {
		engine := sales.New(account)
		revenue = engine.TotalRevenue(start, end)
		profit = engine.TotalProfit(start, end)
		count = engine.TotalTransactions(start, end)
	})
	if err != nil {
		return "Error calculating sales.", nil
	}

	finalResp, err := session.SendMessage(ctx, genai.FunctionResponse{
		Name: "get_sales_report",
		Response: map[string]interface{}{
			"revenue":     revenue,
			"profit":      profit,
			"sales_count": count,
		},
	})
	if err != nil {
		return "", err
	}
	return printResponse(finalResp), nil
}

func printResponse(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "I completed the action."
	}
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			return string(txt)
		}
	}
	return "I completed the action."
}
