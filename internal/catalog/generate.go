package catalog

import (
	"sort"
	"strings"
)

var companies = []string{
	"TCS", "Infosys", "Wipro", "Accenture", "Capgemini", "Cognizant",
	"IBM", "Oracle", "SAP", "Dell", "Amazon", "Flipkart", "Swiggy",
	"Razorpay", "PhonePe", "Paytm", "Zoho", "Freshworks", "Juspay", "CRED",
	"Urban Company", "Meesho", "Zomato", "Ola", "Groww", "Zerodha", "Postman", "BrowserStack",
}

type role struct {
	title  string
	exp    string
	salary string
	skills []string
}

var roles = []role{
	{"SDE Intern", "Fresher", "₹15k–₹40k/month", []string{"Java", "DSA", "Problem Solving"}},
	{"Graduate Engineer Trainee", "Fresher", "3–5 LPA", []string{"C++", "SQL", "Basics of Web"}},
	{"Junior Backend Developer", "0-1", "6–10 LPA", []string{"Node.js", "Express", "MongoDB"}},
	{"Frontend Intern", "Fresher", "₹15k–₹30k/month", []string{"React", "HTML/CSS", "JavaScript"}},
	{"QA Intern", "Fresher", "₹10k–₹20k/month", []string{"Manual Testing", "Selenium", "Java"}},
	{"Data Analyst Intern", "Fresher", "₹20k–₹40k/month", []string{"Python", "SQL", "Excel"}},
	{"Java Developer", "0-1", "5–8 LPA", []string{"Java", "Spring Boot", "Hibernate"}},
	{"Python Developer", "Fresher", "4–7 LPA", []string{"Python", "Django", "Flask"}},
	{"React Developer", "1-3", "8–14 LPA", []string{"React", "Redux", "TypeScript", "Tailwind"}},
	{"Full Stack Engineer", "1-3", "12–18 LPA", []string{"MERN Stack", "AWS", "System Design"}},
}

var (
	locations = []string{"Bangalore", "Hyderabad", "Pune", "Chennai", "Gurgaon", "Noida", "Mumbai", "Remote"}
	modes     = []Mode{ModeOnSite, ModeHybrid, ModeRemote}
	sources   = []string{"LinkedIn", "Naukri", "Indeed", "Instahyre", "Wellfound"}
)

var descriptions = []string{
	"We are looking for a passionate individual to join our engineering team. You will be working on high-scale distributed systems.",
	"Great opportunity for freshers to kickstart their career in a fast-paced environment. Strong problem-solving skills required.",
	"Join our dynamic team to build the next generation of fintech products. Experience with modern web technologies is a plus.",
	"We are hiring! Work on cutting-edge AI/ML projects and contribute to our core platform infrastructure.",
	"Looking for a self-starter who loves coding and building user-centric applications. Competitive salary and perks included.",
}

// DefaultSize is the number of postings generated when no size is configured.
const DefaultSize = 60

// Generate builds n postings deterministically from the fixed tables above,
// ordered by posted age (most recent first). Ids run from 1 to n.
func Generate(n int) []Posting {
	postings := make([]Posting, 0, max(n, 0))
	for i := 1; i <= n; i++ {
		company := companies[i%len(companies)]
		r := roles[i%len(roles)]

		skills := make([]string, len(r.skills))
		copy(skills, r.skills)

		postings = append(postings, Posting{
			ID:          i,
			Title:       r.title,
			Company:     company,
			Location:    locations[i%len(locations)],
			Mode:        modes[i%len(modes)],
			Experience:  r.exp,
			Skills:      skills,
			Source:      sources[i%len(sources)],
			SalaryRange: r.salary,
			PostedAge:   (i * 7) % 10,
			Description: descriptions[i%len(descriptions)],
			ApplyURL:    "https://www." + strings.ToLower(strings.ReplaceAll(company, " ", "")) + ".com/careers",
		})
	}
	sort.SliceStable(postings, func(i, j int) bool {
		return postings[i].PostedAge < postings[j].PostedAge
	})
	return postings
}

// Default returns the catalog of n generated postings.
func Default(n int) *Static {
	if n <= 0 {
		n = DefaultSize
	}
	// Generated ids are unique by construction.
	s, _ := NewStatic(Generate(n))
	return s
}
