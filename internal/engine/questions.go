package engine

var playerQuestions = []Question{
	{Icon: "😊", Text: "I am here to have fun and enjoy the game of tennis."},
	{Icon: "📈", Text: "I commit to focus on my improvement and growth, not on winning or losing."},
	{Icon: "🎯", Text: "I will stay process-oriented and trust my preparation."},
	{Icon: "💭", Text: "I accept that mistakes are part of learning. I will not vent or get upset with myself."},
	{Icon: "🧠", Text: "I will keep a clear mind and stay present during every point."},
	{Icon: "🤝", Text: "I respect my opponent and will compete with integrity and sportsmanship."},
	{Icon: "💪", Text: "I will be tough when it matters and let go of what doesn't."},
	{Icon: "❤️", Text: "I love tennis. There is nowhere else I want to be right now."},
	{Icon: "🏆", Text: "I am not here to prove anything to anyone, only to challenge myself."},
	{Icon: "🎾", Text: "I will treat my racket with care and respect, because it represents someone's hard work and sacrifice."},
	{Icon: "🧹", Text: "Before each point, I will clear any stray balls from the court for safe, clean play."},
	{Icon: "✌️", Text: "I commit to giving my best effort and leaving everything on the court."},
}

var parentQuestions = []Question{
	{Icon: "❤️", Text: "I am here to support my child's growth, joy, and love for tennis."},
	{Icon: "🧘", Text: "I will stay calm and composed when my child makes mistakes - they are learning."},
	{Icon: "😊", Text: "I will not show frustration, anger, or disappointment on court. I am my child's role model."},
	{Icon: "🤝", Text: "I commit to being gracious and courteous to all players, parents, coaches, and officials."},
	{Icon: "⚖️", Text: "I will not react negatively to questionable calls - sportsmanship comes first."},
	{Icon: "📚", Text: "I understand that mistakes are learning opportunities, not failures."},
	{Icon: "🌟", Text: "I will maintain professional decorum and create a positive learning environment."},
	{Icon: "💪", Text: "I will celebrate my child's effort and attitude, not just wins and losses."},
	{Icon: "🎯", Text: "I trust the process and keep the long-term development goal in mind."},
	{Icon: "🏆", Text: "I will encourage resilience and perseverance, even in challenging moments."},
	{Icon: "🎾", Text: "I will respect the game, the equipment, and everyone involved in this journey."},
	{Icon: "🌈", Text: "I am committed to making tennis a positive, enriching experience for my child."},
}

// Questions returns a copy of the role's question set. Unknown roles get nil.
func (r Role) Questions() []Question {
	var set []Question
	switch r {
	case RolePlayer:
		set = playerQuestions
	case RoleParent:
		set = parentQuestions
	default:
		return nil
	}
	return append([]Question(nil), set...)
}

// QuestionCount is len(r.Questions()) without the copy.
func (r Role) QuestionCount() int {
	switch r {
	case RolePlayer:
		return len(playerQuestions)
	case RoleParent:
		return len(parentQuestions)
	default:
		return 0
	}
}

func (r Role) Header() string {
	switch r {
	case RoleParent:
		return "Be the Example 🌟"
	case RolePlayer:
		return "Lock In & Serve It!"
	default:
		return "Choose your role"
	}
}

func (r Role) Intro() string {
	switch r {
	case RoleParent:
		return "Read each commitment and check it off to support your child's journey"
	case RolePlayer:
		return "Read each point and give it a click to check it off 💪"
	default:
		return "Are you a player or a parent?"
	}
}

func (r Role) Badge() string {
	switch r {
	case RoleParent:
		return "👨‍👩‍👧 Parent"
	case RolePlayer:
		return "🎾 Player"
	default:
		return "No role"
	}
}
