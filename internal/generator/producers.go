package generator

import (
	"fmt"
	"time"

	"github.com/dbsmedya/gopipeline/internal/table"
)

var (
	productCategories = []string{"Electronics", "Books", "Clothing", "Home & Garden"}
	productKinds      = []string{"Electronics", "Books", "Clothing", "Home"}
	brands            = []string{"A", "B", "C", "D", "E"}
	availabilities    = []string{"In Stock", "Out of Stock", "Limited"}
	availabilityProbs = []float64{0.7, 0.2, 0.1}

	locations = []string{"New York", "Los Angeles", "Chicago", "Houston", "Phoenix"}
	platforms = []string{"Twitter", "Facebook", "Instagram", "LinkedIn"}

	paymentMethods = []string{"Credit Card", "Debit Card", "PayPal", "Cash"}

	eventTypes  = []string{"page_view", "click", "purchase", "signup", "logout"}
	pageNames   = []string{"home", "products", "cart", "checkout", "profile"}
	userAgents  = []string{"Chrome", "Firefox", "Safari", "Edge"}
	deviceTypes = []string{"Desktop", "Mobile", "Tablet"}
	referrers   = []string{"google.com", "facebook.com", "direct", "twitter.com", "linkedin.com"}
)

// generateWebScraped simulates scraped e-commerce product listings.
func generateWebScraped(n int, now time.Time) *table.Table {
	s := newStream(seedWebScraped)

	productID := make([]interface{}, n)
	productName := make([]interface{}, n)
	price := make([]interface{}, n)
	rating := make([]interface{}, n)
	reviewsCount := make([]interface{}, n)
	category := make([]interface{}, n)
	brand := make([]interface{}, n)
	availability := make([]interface{}, n)
	scrapedTimestamp := make([]interface{}, n)
	sourceURL := make([]interface{}, n)

	for i := 0; i < n; i++ {
		productID[i] = fmt.Sprintf("PROD_%06d", i+1)
		productName[i] = fmt.Sprintf("Product_%s_%d", s.choice(productKinds), i)
		price[i] = s.logNormal(3, 0.8)
		rating[i] = s.uniform(1, 5)
		reviewsCount[i] = s.poisson(50)
		category[i] = s.choice(productCategories)
		brand[i] = "Brand_" + s.choice(brands)
		availability[i] = s.weightedChoice(availabilities, availabilityProbs)
		scrapedTimestamp[i] = now.Add(-time.Duration(s.intn(0, 24)) * time.Hour)
		sourceURL[i] = fmt.Sprintf("https://example-ecommerce.com/product/%d", i+1)
	}

	t := table.New(KeyWebScraped)
	_ = t.AddColumn("product_id", productID)
	_ = t.AddColumn("product_name", productName)
	_ = t.AddColumn("price", price)
	_ = t.AddColumn("rating", rating)
	_ = t.AddColumn("reviews_count", reviewsCount)
	_ = t.AddColumn("category", category)
	_ = t.AddColumn("brand", brand)
	_ = t.AddColumn("availability", availability)
	_ = t.AddColumn("scraped_timestamp", scrapedTimestamp)
	_ = t.AddColumn("source_url", sourceURL)
	return t
}

// generateAPIData simulates social media posts from a platform API.
func generateAPIData(n int, now time.Time) *table.Table {
	s := newStream(seedAPI)

	postID := make([]interface{}, n)
	userID := make([]interface{}, n)
	content := make([]interface{}, n)
	likes := make([]interface{}, n)
	shares := make([]interface{}, n)
	comments := make([]interface{}, n)
	sentimentScore := make([]interface{}, n)
	hashtagsCount := make([]interface{}, n)
	location := make([]interface{}, n)
	createdAt := make([]interface{}, n)
	platform := make([]interface{}, n)

	for i := 0; i < n; i++ {
		postID[i] = fmt.Sprintf("POST_%08d", i+1)
		userID[i] = fmt.Sprintf("USER_%06d", s.intn(1, 10000))
		content[i] = fmt.Sprintf("This is sample social media content #%d", i+1)
		likes[i] = s.poisson(25)
		shares[i] = s.poisson(5)
		comments[i] = s.poisson(8)
		sentimentScore[i] = s.uniform(-1, 1)
		hashtagsCount[i] = int64(s.intn(1, 5))
		location[i] = s.choice(locations)
		createdAt[i] = now.Add(-time.Duration(s.intn(0, 1440)) * time.Minute)
		platform[i] = s.choice(platforms)
	}

	t := table.New(KeyAPIData)
	_ = t.AddColumn("post_id", postID)
	_ = t.AddColumn("user_id", userID)
	_ = t.AddColumn("content", content)
	_ = t.AddColumn("likes", likes)
	_ = t.AddColumn("shares", shares)
	_ = t.AddColumn("comments", comments)
	_ = t.AddColumn("sentiment_score", sentimentScore)
	_ = t.AddColumn("hashtags_count", hashtagsCount)
	_ = t.AddColumn("location", location)
	_ = t.AddColumn("created_at", createdAt)
	_ = t.AddColumn("platform", platform)
	return t
}

// generateDatabaseData simulates rows extracted from a transactional
// database. The total_amount column is derived from the other fields
// in a second pass once every row has been generated.
func generateDatabaseData(n int, now time.Time) *table.Table {
	s := newStream(seedDatabase)

	transactionID := make([]interface{}, n)
	customerID := make([]interface{}, n)
	productID := make([]interface{}, n)
	quantity := make([]interface{}, n)
	unitPrice := make([]interface{}, n)
	totalAmount := make([]interface{}, n)
	paymentMethod := make([]interface{}, n)
	transactionDate := make([]interface{}, n)
	storeID := make([]interface{}, n)
	salesRepID := make([]interface{}, n)
	discountApplied := make([]interface{}, n)
	taxRate := make([]interface{}, n)
	shippingCost := make([]interface{}, n)

	for i := 0; i < n; i++ {
		transactionID[i] = fmt.Sprintf("TXN_%010d", i+1)
		customerID[i] = fmt.Sprintf("CUST_%06d", s.intn(1, 5000))
		productID[i] = fmt.Sprintf("PROD_%06d", s.intn(1, 1000))
		quantity[i] = int64(s.intn(1, 10))
		unitPrice[i] = s.logNormal(3, 0.5)
		paymentMethod[i] = s.choice(paymentMethods)
		transactionDate[i] = now.Add(-time.Duration(s.intn(0, 365)) * 24 * time.Hour)
		storeID[i] = fmt.Sprintf("STORE_%03d", s.intn(1, 100))
		salesRepID[i] = fmt.Sprintf("REP_%03d", s.intn(1, 200))
		discountApplied[i] = s.uniform(0, 0.3)
		taxRate[i] = 0.08
		shippingCost[i] = s.uniform(0, 25)
	}

	for i := 0; i < n; i++ {
		qty := float64(quantity[i].(int64))
		price := unitPrice[i].(float64)
		discount := discountApplied[i].(float64)
		tax := taxRate[i].(float64)
		shipping := shippingCost[i].(float64)
		totalAmount[i] = qty*price*(1-discount)*(1+tax) + shipping
	}

	t := table.New(KeyDatabase)
	_ = t.AddColumn("transaction_id", transactionID)
	_ = t.AddColumn("customer_id", customerID)
	_ = t.AddColumn("product_id", productID)
	_ = t.AddColumn("quantity", quantity)
	_ = t.AddColumn("unit_price", unitPrice)
	_ = t.AddColumn("total_amount", totalAmount)
	_ = t.AddColumn("payment_method", paymentMethod)
	_ = t.AddColumn("transaction_date", transactionDate)
	_ = t.AddColumn("store_id", storeID)
	_ = t.AddColumn("sales_rep_id", salesRepID)
	_ = t.AddColumn("discount_applied", discountApplied)
	_ = t.AddColumn("tax_rate", taxRate)
	_ = t.AddColumn("shipping_cost", shippingCost)
	return t
}

// generateStreamingData simulates clickstream events. Roughly one in
// ten events carries a conversion value.
func generateStreamingData(n int, now time.Time) *table.Table {
	s := newStream(seedStreaming)

	eventID := make([]interface{}, n)
	userID := make([]interface{}, n)
	eventType := make([]interface{}, n)
	timestamp := make([]interface{}, n)
	sessionID := make([]interface{}, n)
	pageURL := make([]interface{}, n)
	userAgent := make([]interface{}, n)
	ipAddress := make([]interface{}, n)
	deviceType := make([]interface{}, n)
	referrer := make([]interface{}, n)
	conversionValue := make([]interface{}, n)

	for i := 0; i < n; i++ {
		eventID[i] = fmt.Sprintf("EVENT_%08d", i+1)
		userID[i] = fmt.Sprintf("USER_%06d", s.intn(1, 10000))
		eventType[i] = s.choice(eventTypes)
		timestamp[i] = now.Add(-time.Duration(s.intn(0, 3600)) * time.Second)
		sessionID[i] = fmt.Sprintf("SESSION_%08d", s.intn(1, 50000))
		pageURL[i] = "/page/" + s.choice(pageNames)
		userAgent[i] = s.choice(userAgents)
		ipAddress[i] = fmt.Sprintf("%d.%d.%d.%d",
			s.intn(1, 255), s.intn(1, 255), s.intn(1, 255), s.intn(1, 255))
		deviceType[i] = s.choice(deviceTypes)
		referrer[i] = s.choice(referrers)
		if s.rng.Float64() < 0.1 {
			conversionValue[i] = s.exponential(50)
		} else {
			conversionValue[i] = float64(0)
		}
	}

	t := table.New(KeyStreaming)
	_ = t.AddColumn("event_id", eventID)
	_ = t.AddColumn("user_id", userID)
	_ = t.AddColumn("event_type", eventType)
	_ = t.AddColumn("timestamp", timestamp)
	_ = t.AddColumn("session_id", sessionID)
	_ = t.AddColumn("page_url", pageURL)
	_ = t.AddColumn("user_agent", userAgent)
	_ = t.AddColumn("ip_address", ipAddress)
	_ = t.AddColumn("device_type", deviceType)
	_ = t.AddColumn("referrer", referrer)
	_ = t.AddColumn("conversion_value", conversionValue)
	return t
}
