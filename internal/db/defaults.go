package db

// Names of the seeded templates.
const (
	DefaultCoverLetterName = "Default Cover Letter"
	DefaultResumeName      = "Default Resume"
)

// DefaultCoverLetterTemplate uses every placeholder the personalizer understands.
const DefaultCoverLetterTemplate = `Dear Hiring Manager,

I am writing to express my strong interest in the {position_title} position at {company_name}. With my background in software development and passion for technology, I am excited about the opportunity to contribute to your team.

{personalized_content}

I am particularly drawn to {company_name} because of {company_reasons}. I believe my skills in {relevant_skills} make me an ideal candidate for this role.

Thank you for considering my application. I look forward to discussing how I can contribute to your team's success.

Best regards,
[Your Name]`

// DefaultResumeTemplate is a sample résumé document.
const DefaultResumeTemplate = `{
    "name": "John Doe",
    "email": "john.doe@email.com",
    "phone": "(555) 123-4567",
    "skills": [
        "Python", "JavaScript", "React", "Flask", "Docker",
        "Git", "SQL", "REST APIs", "Machine Learning"
    ],
    "experience": [
        {
            "title": "Software Developer",
            "company": "Tech Company",
            "duration": "2020-Present",
            "description": "Developed web applications using Python and JavaScript"
        }
    ],
    "education": [
        {
            "degree": "Bachelor of Science in Computer Science",
            "school": "University Name",
            "year": "2020"
        }
    ]
}`
