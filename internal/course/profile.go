package course

// Contact is one way of reaching the pilot.
type Contact struct {
	Label string
	Value string
}

// Profile is the static pilot dossier shown on the start screen, the info
// modal and the ending crawl.
type Profile struct {
	Name         string
	Class        string
	Rank         string
	Base         string
	Education    string
	Experience   string
	Summary      string
	Brief        []string
	Achievements []string
	Contacts     []Contact
	Core         []string
	Professional []string
	Additional   []string
	Signoff      string
}

// Pilot is the built-in profile.
var Pilot = Profile{
	Name:       "Bahadır Halil YALCIN",
	Class:      "Senior Software Engineer",
	Rank:       "Team Lead",
	Base:       "Istanbul, Turkey (Remote Capable)",
	Education:  "M.Sc. Software Engineering",
	Experience: "8+ Years",
	Summary: "A seasoned Senior Software Engineer and Team Lead specializing in payment systems and fintech solutions. " +
		"Architect of Payment Gateways, Master of Distributed Systems, and Champion of Scalable Microservices. " +
		"8+ years navigating the galaxy of enterprise software with expertise in React, Java, and event-driven architectures.",
	Brief: []string{
		"Senior Software Engineer and Team Lead with 8+ years of professional experience specializing in " +
			"payment systems, full-stack development, and microservices architecture. Currently leading a " +
			"cross-functional team of 10+ engineers at Firisbe, architecting fintech payment solutions.",
		"Proven track record across fintech payment systems (Payment Gateway, Payment Facilitator, SoftPOS, Digital Wallet), " +
			"core banking infrastructure (microservices with 99.99% uptime) and gaming (SpecialWar MMO FPS, 2M+ users).",
	},
	Achievements: []string{
		"Architected and developed complete payment ecosystem: Payment Gateway, Payment Facilitator, SoftPOS, and Digital Wallet solutions",
		"Built high-throughput payment processing systems using Kafka for event-driven architecture",
		"Designed microservices for core banking systems at Digital Commerce Bank with 99.99% uptime",
		"Founded and scaled SpecialWar MMO FPS game to 2M+ users with 50K+ daily active players",
		"Leading cross-functional team of 10+ engineers with focus on code quality and best practices",
		"China Government Scholarship recipient for Master's degree in Software Engineering",
	},
	Contacts: []Contact{
		{"MAIL", "bahadrhllyalcn@gmail.com"},
		{"LINKEDIN", "linkedin.com/in/bahadryalcn"},
		{"GITHUB", "github.com/bahadryalcn"},
		{"PHONE", "+90 532 062 97 56"},
	},
	Core: []string{
		"React.js", "Next.js", "TypeScript", "JavaScript", "Node.js", "Java",
		"Express.js", "PostgreSQL", "MongoDB", "Kafka", "Payment Systems",
		"Microservices Architecture", "Team Leadership", "System Design",
	},
	Professional: []string{
		".NET Core", "C#", "ASP.NET MVC", "NestJS", "Redux", "Material-UI",
		"Tailwind CSS", "MySQL", "Redis", "SQL Server", "Docker", "Kubernetes",
		"AWS", "Azure", "RabbitMQ", "RESTful APIs", "GraphQL", "Payment Gateway",
		"Payment Facilitator", "SoftPOS", "Digital Wallet", "CI/CD", "Jenkins",
		"GitHub Actions", "Agile/Scrum",
	},
	Additional: []string{
		"Elasticsearch", "Nginx", "Event-Driven Architecture", "Distributed Systems",
		"Jest", "React Testing Library", "Unit Testing", "Integration Testing",
		"Code Review", "Clean Code", "SOLID Principles", "Design Patterns",
		"Mentoring", "Technical Interviews", "Project Planning", "Git", "Linux",
		"Performance Optimization", "Security Best Practices", "API Design",
		"Three.js", "HTML5/CSS3",
	},
	Signoff: "The Force is strong with this one.",
}
