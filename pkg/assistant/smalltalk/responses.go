package smalltalk

import "pos-intelligence-be/pkg/assistant/intent"

// Canned replies for the conversational categories. These never touch the
// model or the stores.
const (
	greetingReply = "Hello! I'm your POS assistant. Ask me about inventory, product specs, prices, or order statuses."
	aboutReply    = "I can answer questions about products, stock levels, prices, orders and their statuses, delivery issues, and product specifications or policies. Try asking \"What is the price of iPhone 15?\" or \"Why is order 118 delayed?\""
	closureReply  = "You're welcome! Feel free to ask if you need anything else."
)

// Reply returns the canned response for a small-talk intent, or false when
// the intent needs the full pipeline.
func Reply(it intent.Intent) (string, bool) {
	switch it {
	case intent.IntentGreeting:
		return greetingReply, true
	case intent.IntentAbout:
		return aboutReply, true
	case intent.IntentClosure:
		return closureReply, true
	default:
		return "", false
	}
}
