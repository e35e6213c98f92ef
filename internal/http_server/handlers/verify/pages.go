package verify

import "html/template"

type pageData struct {
	FrontendURL string
}

var (
	successPage = template.Must(template.New("success").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
	<meta charset="UTF-8">
	<title>Email Verified - TutorlyAI</title>
</head>
<body>
	<h1>Email Verified Successfully!</h1>
	<p>Thank you for verifying your email address. Your account is now active.</p>
	<a href="{{.FrontendURL}}/dashboard">Go to Dashboard</a>
</body>
</html>
`))

	alreadyVerifiedPage = template.Must(template.New("already_verified").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
	<meta charset="UTF-8">
	<title>Already Verified - TutorlyAI</title>
</head>
<body>
	<h1>Email Already Verified</h1>
	<p>Your email address has already been verified. There's no need to verify again.</p>
	<a href="{{.FrontendURL}}/dashboard">Go to Dashboard</a>
</body>
</html>
`))

	notFoundPage = template.Must(template.New("not_found").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
	<meta charset="UTF-8">
	<title>User Not Found - TutorlyAI</title>
</head>
<body>
	<h1>User Not Found</h1>
	<p>We couldn't find a user associated with this verification link. The link may have expired or is invalid.</p>
	<a href="{{.FrontendURL}}/login">Go to Login</a>
</body>
</html>
`))

	errorPage = template.Must(template.New("error").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
	<meta charset="UTF-8">
	<title>Error - TutorlyAI</title>
</head>
<body>
	<h1>Verification Error</h1>
	<p>Something went wrong while verifying your email address. Please try again later or contact support.</p>
	<a href="{{.FrontendURL}}/login">Go to Login</a>
</body>
</html>
`))
)
