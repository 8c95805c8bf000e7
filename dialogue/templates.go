package dialogue

import "slices"

var templates = map[Intent][]string{
	IntentGreeting: {
		"Hello! I'm AIVI, your AI assistant. How can I help you today?",
		"Hi there! I'm here to help with your studies and questions. What would you like to know?",
		"Good to see you! I'm ready to assist with academics, accessibility, or any questions you have.",
		"Hello! Welcome to AIVI. I can help with studies, answer questions, and assist with accessibility needs.",
	},
	IntentHelpRequest: {
		"I'm here to help! I can assist with academic questions, study planning, and more. What specific area do you need help with?",
		"Of course! I can help with studying, answering questions, and solving math problems. What would you like to do?",
		"I'd be happy to help! I have academic information in math, science, English, and history. What interests you?",
		"Absolutely! I can explain concepts, help with homework, and read answers aloud. How can I assist you today?",
	},
	IntentStudyHelp: {
		"Great that you're focusing on studying! I can help you with specific subjects or quiz you on topics. What subject are you working on?",
		"I'm here to support your studies! I can explain concepts or help with homework. What would be most helpful right now?",
		"Study time is important! I can help you understand difficult concepts or organize your study time. What's your current focus?",
		"Excellent! Learning is a journey. I can break down complex topics and give examples. What subject or topic are you studying?",
	},
	IntentGratitude: {
		"You're very welcome! I'm happy to help anytime.",
		"My pleasure! Feel free to ask if you have more questions.",
		"Glad I could help! Is there anything else you'd like to know?",
		"You're welcome! I'm here whenever you need assistance.",
		"Happy to help! Don't hesitate to ask if you need anything else.",
	},
	IntentGoodbye: {
		"Goodbye! Feel free to come back anytime you need help with studies or have questions.",
		"See you later! Remember, I'm always here to help with your learning journey.",
		"Take care! Come back anytime you need academic assistance or have questions.",
		"Farewell! Good luck with your studies, and don't hesitate to return if you need help.",
	},
	IntentEncouragement: {
		"Don't give up! Learning takes time and practice. What specific part can we work on together?",
		"I believe in you! Sometimes concepts take time to click. Let's break this down into smaller pieces. What's the first thing you'd like to understand?",
		"Finding this difficult means you're challenging yourself. That's how real learning happens. How can I help make this clearer?",
		"Every expert was once confused too. Let's tackle this step by step. What would help most right now?",
	},
	IntentGeneral: {
		"I'm not sure I fully understand. Could you rephrase your question or be more specific about what you'd like to know?",
		"That's an interesting question! Could you provide more details so I can help you better?",
		"I want to make sure I give you the best answer. Could you tell me more about what you're looking for?",
		"I'm here to help! Could you clarify what specific information or assistance you need?",
	},
}

var studyEncouragements = []string{
	" You're doing great by seeking help!",
	" Keep up the excellent work!",
	" I believe in your ability to learn this!",
	" Every question you ask helps you learn more!",
}

// Fixed replies.
const (
	emptyInputReply    = "I'm here to help. What would you like to know or discuss?"
	questionFollowUp   = "\n\nWould you like me to explain anything further or do you have related questions?"
	generalFollowUp    = "\n\nWould you like me to explain anything further?"
	unknownTopicReply  = "I don't have information about '%s' right now. I can help you with other subjects like mathematics, English, science, or history. What subject area interests you?"
	mathOperationReply = "I can help with math problems! Could you state the problem clearly? For example: 'solve 2 plus 3' or 'what is 15 divided by 3'?"
	mathTopicsReply    = "I can help with math topics including arithmetic, algebra, and geometry. What math concept would you like to learn about?"
	nameReply          = "Nice to meet you, %s! I'm AIVI, and I'm here to help with your studies. What would you like to work on today?"
	preferenceReply    = "That's great to know! Understanding your preferences helps me assist you better. How can I help you today?"
	needReply          = "I understand. Let me know specifically what you need help with, and I'll do my best to assist you."
	personalReply      = "Thank you for sharing that with me. How can I help you today?"
	troubledReply      = "I understand this can be challenging. Take a deep breath, we'll work through this together. What specific part is giving you trouble?"
	positiveReply      = "That's wonderful! I'm glad you're feeling positive. How can I help you continue this great momentum?"
	downReply          = "I'm sorry you're feeling this way. Learning can be overwhelming, but every expert was once a beginner. What can I do to help?"
	supportReply       = "I'm here to support you through your learning journey. What would help you feel more confident right now?"
	clarifyReply       = "Let me explain that differently: %s\n\nIs there a specific part you'd like me to clarify further?"
	clarifyEmptyReply  = "I'd be happy to clarify! What specifically would you like me to explain in more detail?"
)

// Templates returns the reply pool of intent. Intents answered without a
// pool return nil.
func Templates(intent Intent) []string {
	return slices.Clone(templates[intent])
}
