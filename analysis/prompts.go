package analysis

import "fmt"

// ResumeAnalysisPrompt asks the model to parse a plain text resume, review it and score readiness
func ResumeAnalysisPrompt(resumeText string) string {
	return fmt.Sprintf(`
You are a professional resume parsing and career analysis expert.

From the given *plain text resume*, first extract structured information in pure JSON format using this schema:

{
  "name": "",
  "email": "",
  "phone": "",
  "linkedin": "",
  "github": "",
  "education": [
    { "degree": "", "institution": "", "year_of_graduation": "", "gpa_or_percentage": "" }
  ],
  "skills": [],
  "projects": [
    { "title": "", "description": "", "technologies_used": [] }
  ],
  "experience": [
    { "role": "", "organization": "", "duration": "", "achievements": "" }
  ],
  "certifications": [],
  "achievements": [],
  "career_objective": ""
}

Resume Text:
%s

After extracting JSON, immediately perform a **career analysis** covering:

1. **Overall Summary**
2. **Skillset Evaluation**
3. **Education Analysis**
4. **Projects & Experience**
5. **Career Objective Assessment**
6. **Strengths & Achievements**
7. **Improvement Areas**
8. **Recommended Career Paths**
9. **Final Verdict**

Finally, assign a **readiness score (0-100)** based on:

| Category | Weight |
|-----------|---------|
| Structure & Clarity | 15 |
| Skill Relevance | 20 |
| Experience / Projects | 20 |
| Education | 15 |
| Language & Professionalism | 15 |
| Quantifiable Impact | 15 |

Return **only valid JSON** in this format (no explanation text outside JSON):

{
  "parsed_resume": { ... },
  "analysis": {
    "overall_summary": "",
    "skills_evaluation": "",
    "education_analysis": "",
    "projects_experience": "",
    "career_objective_assessment": "",
    "strengths": [],
    "improvement_areas": [],
    "recommended_roles": [],
    "final_verdict": ""
  },
  "score_breakdown": {
    "structure": <0-15>,
    "skills": <0-20>,
    "experience": <0-20>,
    "education": <0-15>,
    "language": <0-15>,
    "impact": <0-15>
  },
  "total_score": <0-100>
}
`, resumeText)
}

// MatchPrompt asks the model to compare a resume with a job description
func MatchPrompt(resumeText, jobDescription string) string {
	return fmt.Sprintf(`
You are an AI resume-job matcher and career advisor.

Compare the following resume and job description. Perform these tasks:

1. Compute a similarity score (0-100).
2. Extract matching and missing keywords.
3. Provide a short summary of how well the candidate fits the job.
4. Suggest **specific online courses or certifications** that will help the candidate bridge the gap.
   - Include 3-5 recommendations.
   - Prefer Coursera, Udemy, Google Career Certificates, or LinkedIn Learning.
   - Provide **course name, short reason, and direct link**.

Return only valid JSON in this format:

{
  "match_score": <0-100>,
  "matching_keywords": [],
  "missing_keywords": [],
  "summary": "",
  "suggested_courses": [
    {
      "name": "",
      "reason": "",
      "link": ""
    }
  ]
}

Resume:
%s

Job Description:
%s
`, resumeText, jobDescription)
}
