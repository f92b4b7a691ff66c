// Package transform implements the derived-column transformations for
// the transform stage. Every transformation is row-preserving and
// column-adding; the input set is treated as read-only.
package transform

import (
	"fmt"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/dbsmedya/gopipeline/internal/generator"
	"github.com/dbsmedya/gopipeline/internal/table"
)

// Derived table keys produced by Apply.
const (
	KeyProducts     = "products"
	KeySocialMedia  = "social_media"
	KeyTransactions = "transactions"
	KeyUserEvents   = "user_events"
)

// seedDerived feeds the re-randomized columns that have no raw
// counterpart (profit margin, customer segment, session metrics).
// Those fields are uncorrelated with everything else by design of the
// synthetic sources.
const seedDerived = 46

var customerSegments = []string{"Premium", "Standard", "Basic"}

// Apply transforms the four raw source tables into their derived
// forms. A missing or mistyped expected column is a contract violation
// and is returned as an error rather than producing nulls.
func Apply(raw *table.Set) (*table.Set, error) {
	src := rand.NewSource(seedDerived)
	rng := rand.New(src)

	derived := table.NewSet()

	webScraped, ok := raw.Get(generator.KeyWebScraped)
	if !ok {
		return nil, fmt.Errorf("transform: missing raw table %s", generator.KeyWebScraped)
	}
	products, err := transformProducts(webScraped)
	if err != nil {
		return nil, fmt.Errorf("transform %s: %w", KeyProducts, err)
	}
	derived.Put(KeyProducts, products)

	apiData, ok := raw.Get(generator.KeyAPIData)
	if !ok {
		return nil, fmt.Errorf("transform: missing raw table %s", generator.KeyAPIData)
	}
	socialMedia, err := transformSocialMedia(apiData)
	if err != nil {
		return nil, fmt.Errorf("transform %s: %w", KeySocialMedia, err)
	}
	derived.Put(KeySocialMedia, socialMedia)

	dbData, ok := raw.Get(generator.KeyDatabase)
	if !ok {
		return nil, fmt.Errorf("transform: missing raw table %s", generator.KeyDatabase)
	}
	transactions, err := transformTransactions(dbData, rng, src)
	if err != nil {
		return nil, fmt.Errorf("transform %s: %w", KeyTransactions, err)
	}
	derived.Put(KeyTransactions, transactions)

	streaming, ok := raw.Get(generator.KeyStreaming)
	if !ok {
		return nil, fmt.Errorf("transform: missing raw table %s", generator.KeyStreaming)
	}
	userEvents, err := transformUserEvents(streaming, rng, src)
	if err != nil {
		return nil, fmt.Errorf("transform %s: %w", KeyUserEvents, err)
	}
	derived.Put(KeyUserEvents, userEvents)

	return derived, nil
}

// transformProducts adds price and rating bucket columns.
func transformProducts(raw *table.Table) (*table.Table, error) {
	out := raw.Clone(KeyProducts)

	price, err := raw.Column("price")
	if err != nil {
		return nil, err
	}
	rating, err := raw.Column("rating")
	if err != nil {
		return nil, err
	}

	n := raw.NumRows()
	priceCategory := make([]interface{}, n)
	ratingCategory := make([]interface{}, n)
	for i := 0; i < n; i++ {
		priceCategory[i] = priceBins.Label(table.ToFloat64(price.Values[i]))
		ratingCategory[i] = ratingBins.Label(table.ToFloat64(rating.Values[i]))
	}

	if err := out.AddColumn("price_category", priceCategory); err != nil {
		return nil, err
	}
	if err := out.AddColumn("rating_category", ratingCategory); err != nil {
		return nil, err
	}
	return out, nil
}

// transformSocialMedia adds the engagement score and sentiment bucket.
// engagement = likes + 2*shares + 3*comments.
func transformSocialMedia(raw *table.Table) (*table.Table, error) {
	out := raw.Clone(KeySocialMedia)

	likes, err := raw.Column("likes")
	if err != nil {
		return nil, err
	}
	shares, err := raw.Column("shares")
	if err != nil {
		return nil, err
	}
	comments, err := raw.Column("comments")
	if err != nil {
		return nil, err
	}
	sentiment, err := raw.Column("sentiment_score")
	if err != nil {
		return nil, err
	}

	n := raw.NumRows()
	engagementScore := make([]interface{}, n)
	sentimentCategory := make([]interface{}, n)
	for i := 0; i < n; i++ {
		engagementScore[i] = table.ToInt64(likes.Values[i]) +
			2*table.ToInt64(shares.Values[i]) +
			3*table.ToInt64(comments.Values[i])
		sentimentCategory[i] = sentimentBins.Label(table.ToFloat64(sentiment.Values[i]))
	}

	if err := out.AddColumn("engagement_score", engagementScore); err != nil {
		return nil, err
	}
	if err := out.AddColumn("sentiment_category", sentimentCategory); err != nil {
		return nil, err
	}
	return out, nil
}

// transformTransactions adds profit figures, the transaction month,
// and a randomized customer segment.
func transformTransactions(raw *table.Table, rng *rand.Rand, src rand.Source) (*table.Table, error) {
	out := raw.Clone(KeyTransactions)

	totalAmount, err := raw.Column("total_amount")
	if err != nil {
		return nil, err
	}
	transactionDate, err := raw.Column("transaction_date")
	if err != nil {
		return nil, err
	}

	marginDist := distuv.Uniform{Min: 0.1, Max: 0.4, Src: src}

	n := raw.NumRows()
	profitMargin := make([]interface{}, n)
	profit := make([]interface{}, n)
	transactionMonth := make([]interface{}, n)
	customerSegment := make([]interface{}, n)
	for i := 0; i < n; i++ {
		margin := marginDist.Rand()
		profitMargin[i] = margin
		profit[i] = table.ToFloat64(totalAmount.Values[i]) * margin
		ts, ok := table.TimeFromCell(transactionDate.Values[i])
		if !ok {
			return nil, fmt.Errorf("table %s: column transaction_date row %d: expected time, got %T",
				raw.Name(), i, transactionDate.Values[i])
		}
		transactionMonth[i] = ts.Format("2006-01")
		customerSegment[i] = customerSegments[rng.Intn(len(customerSegments))]
	}

	if err := out.AddColumn("profit_margin", profitMargin); err != nil {
		return nil, err
	}
	if err := out.AddColumn("profit", profit); err != nil {
		return nil, err
	}
	if err := out.AddColumn("transaction_month", transactionMonth); err != nil {
		return nil, err
	}
	if err := out.AddColumn("customer_segment", customerSegment); err != nil {
		return nil, err
	}
	return out, nil
}

// transformUserEvents adds session metrics, a conversion flag, and
// the event hour.
func transformUserEvents(raw *table.Table, rng *rand.Rand, src rand.Source) (*table.Table, error) {
	out := raw.Clone(KeyUserEvents)

	conversionValue, err := raw.Column("conversion_value")
	if err != nil {
		return nil, err
	}
	timestamp, err := raw.Column("timestamp")
	if err != nil {
		return nil, err
	}

	durationDist := distuv.Exponential{Rate: 1.0 / 300, Src: src}

	n := raw.NumRows()
	sessionDuration := make([]interface{}, n)
	bounceRate := make([]interface{}, n)
	conversionFlag := make([]interface{}, n)
	hourOfDay := make([]interface{}, n)
	for i := 0; i < n; i++ {
		sessionDuration[i] = durationDist.Rand()
		bounceRate[i] = rng.Float64()
		if table.ToFloat64(conversionValue.Values[i]) > 0 {
			conversionFlag[i] = int64(1)
		} else {
			conversionFlag[i] = int64(0)
		}
		ts, ok := table.TimeFromCell(timestamp.Values[i])
		if !ok {
			return nil, fmt.Errorf("table %s: column timestamp row %d: expected time, got %T",
				raw.Name(), i, timestamp.Values[i])
		}
		hourOfDay[i] = int64(ts.Hour())
	}

	if err := out.AddColumn("session_duration", sessionDuration); err != nil {
		return nil, err
	}
	if err := out.AddColumn("bounce_rate", bounceRate); err != nil {
		return nil, err
	}
	if err := out.AddColumn("conversion_flag", conversionFlag); err != nil {
		return nil, err
	}
	if err := out.AddColumn("hour_of_day", hourOfDay); err != nil {
		return nil, err
	}
	return out, nil
}
