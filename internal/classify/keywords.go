package classify

// categoryKeywords maps each category to the description keywords that vote
// for it. Classification counts substring hits; ties break in favor of the
// category listed first in model.Categories.
var categoryKeywords = map[string][]string{
	"Food": {
		"food", "coffee", "tea", "lunch", "dinner", "breakfast", "brunch",
		"restaurant", "cafe", "pizza", "burger", "sandwich", "snack",
		"juice", "drink", "meal", "bakery", "dessert", "shawarma", "falafel",
	},
	"Transportation": {
		"uber", "taxi", "cab", "bus", "train", "metro", "fuel", "gas",
		"petrol", "diesel", "parking", "toll", "careem", "ride", "fare",
	},
	"Shopping": {
		"grocery", "groceries", "supermarket", "market", "mall", "clothes",
		"clothing", "shoes", "shirt", "amazon", "store", "shopping",
		"electronics", "gift",
	},
	"Entertainment": {
		"movie", "cinema", "netflix", "spotify", "game", "gaming", "concert",
		"theater", "theatre", "show", "subscription", "party",
	},
	"Bills & Utilities": {
		"electricity", "electric", "water bill", "internet", "wifi", "phone",
		"mobile", "bill", "rent", "utility", "utilities", "insurance",
	},
	"Healthcare": {
		"doctor", "pharmacy", "medicine", "medication", "hospital", "clinic",
		"dentist", "dental", "vitamins", "checkup",
	},
	"Education": {
		"book", "books", "course", "tuition", "school", "university",
		"college", "class", "training", "workshop",
	},
	"Travel": {
		"flight", "hotel", "airbnb", "trip", "vacation", "travel", "visa",
		"luggage", "booking",
	},
	"Personal Care": {
		"haircut", "barber", "salon", "spa", "gym", "cosmetics", "skincare",
		"massage", "laundry",
	},
}
