package prompts

// Default content limits, in characters.
const (
	QuizContentLimit    = 3000
	SummaryContentLimit = 5000
	DefaultContentLimit = 8000
)

// Template pairs a system instruction with a user message pattern.
type Template struct {
	Name       string
	System     string
	User       string
	MaxContent int
}

// Prompt is a rendered template ready for the generation backend.
type Prompt struct {
	System string
	User   string
}

// Render sanitizes the content field and fills both halves of the template.
func (t Template) Render(fields Fields) (Prompt, error) {
	values := make(Fields, len(fields))
	for k, v := range fields {
		values[k] = v
	}
	if content, ok := values["content"].(string); ok {
		values["content"] = SanitizeContent(content, t.MaxContent)
	}

	system, err := Format(t.Name, t.System, values)
	if err != nil {
		return Prompt{}, err
	}
	user, err := Format(t.Name, t.User, values)
	if err != nil {
		return Prompt{}, err
	}
	return Prompt{System: system, User: user}, nil
}

var Flashcards = Template{
	Name:       "flashcards",
	MaxContent: DefaultContentLimit,
	System: `You are an expert flashcard author. Build flashcards strictly from the supplied material.
RULES:
1. Every question and answer must come from the supplied material
2. Keep questions clear and answers accurate
3. Respond with valid JSON only, without commentary or markdown`,
	User: `Read the material below and write {num} flashcards using ONLY the information it contains:

MATERIAL:
{content}

Write question-answer pairs that help memorize the key facts above.

Respond with ONLY this JSON:
{{"title": "Flashcards", "flashcards": [{{"id": 1, "question": "Question from the material?", "answer": "Answer from the material"}}]}}`,
}

var Quiz = Template{
	Name:       "quiz",
	MaxContent: QuizContentLimit,
	System: `You are an expert quiz author. Write quiz questions strictly from the supplied material.
RULES:
1. Every question must rest on facts from the supplied material
2. All options must be plausible and exactly ONE is correct
3. Respond with valid JSON only, without commentary or markdown`,
	User: `Read the material below carefully and write {num} multiple-choice questions using ONLY the information it contains:

MATERIAL:
{content}

Each question must have exactly 4 options labeled A, B, C and D with exactly ONE correct answer.

Respond with ONLY this JSON:
{{"title": "Quiz", "questions": [{{"id": 1, "question": "Question from the material?", "options": [{{"label": "A", "text": "Wrong option", "is_correct": false}}, {{"label": "B", "text": "Correct option", "is_correct": true}}, {{"label": "C", "text": "Wrong option", "is_correct": false}}, {{"label": "D", "text": "Wrong option", "is_correct": false}}], "explanation": "Why the correct option is right"}}]}}`,
}

var Matching = Template{
	Name:       "matching",
	MaxContent: DefaultContentLimit,
	System: `You are an educational game designer. Produce term-definition pairs as JSON.
Respond with valid JSON only, without commentary or markdown.`,
	User: `Write {num} term-definition pairs from this material:

{content}

Use exactly this JSON structure:
{{"title": "Matching Game", "pairs": [{{"id": 1, "term": "Term 1", "definition": "Definition 1"}}, {{"id": 2, "term": "Term 2", "definition": "Definition 2"}}]}}`,
}

var StudyGuide = Template{
	Name:       "study_guide",
	MaxContent: DefaultContentLimit,
	System: `You are a study guide author. Produce study material as JSON.
Respond with valid JSON only, without commentary or markdown.`,
	User: `Write a study guide from this material:

{content}

Subject: {subject}

Use exactly this JSON structure:
{{"title": "Study Guide", "subject": "{subject}", "summary": "Two or three paragraph summary", "outlines": [{{"id": 1, "title": "Section", "content": "Overview", "sub_items": ["Point 1", "Point 2"]}}], "bullet_takeaways": ["Takeaway 1", "Takeaway 2"], "key_topics": [{{"id": 1, "topic": "Topic", "importance": "high"}}], "facts": [{{"id": 1, "fact": "Fact", "category": "Category"}}]}}`,
}

var Evaluation = Template{
	Name: "evaluation",
	System: `You are an answer evaluator. Assess a student's answer and respond as JSON.
Respond with valid JSON only, without commentary or markdown.`,
	User: `Evaluate this answer:

Question: {question}
Correct Answer: {correct}
Student Answer: {user_answer}

Use exactly this JSON structure, with score between 0 and 1:
{{"is_correct": true, "score": 0.85, "feedback": "Feedback text", "suggestions": ["Suggestion 1", "Suggestion 2"]}}`,
}

var Summary = Template{
	Name:       "summary",
	MaxContent: SummaryContentLimit,
	System: `You are an expert note summarizer. Write concise, informative summaries that keep the key concepts.
RULES:
1. Identify and keep the most important concepts
2. Use clear, concise language
3. Organize the information logically
4. Respond with valid JSON only, without commentary or markdown`,
	User: `Summarize these study notes concisely while keeping every key concept:

NOTES:
{content}

The summary needs a short overview of two or three sentences, bullet key points, important terms with definitions, and the main takeaways.

Respond with ONLY this JSON:
{{"title": "Summary", "overview": "Short overview of the notes", "key_points": ["Key point 1", "Key point 2"], "terms": [{{"term": "Important term", "definition": "What it means"}}], "takeaways": ["Main takeaway 1", "Main takeaway 2"]}}`,
}

// All lists every feature template.
func All() []Template {
	return []Template{Flashcards, Quiz, Matching, StudyGuide, Evaluation, Summary}
}
