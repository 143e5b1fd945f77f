// Package services holds the business logic behind the dashboard API.
//
// Services defined in this package:
// - AuthService: mock sign-in, sessions and access tokens
// - StudentService: roster listing, detail, regeneration and CSV export
// - DashboardService: headline stats and charts
// - RiskService: roster scoring rule and enrollment predictor
// - InsightService: generated narratives for a student
// - InterventionService: per-student intervention log
// - UploadService: roster data file uploads
// - EmailService: guardian emails
package services
