// Package controller implements the login form controller: it binds to the
// #loginForm markup through the dom contract, validates the email on blur,
// clears the email error while the user types, and on submit runs one of two
// simulated submissions selected by SubmitMode.
//
// SubmitModePasswordGate validates the password, puts the .harmony-button
// control into its loading state and navigates to SuccessPath after
// RedirectDelay. SubmitModeEmailGate validates the email and raises the
// SuccessMessage alert. Neither mode talks to a server; the password
// comparison is a placeholder that callers replace with WithPasswordCheck.
//
// The redirect runs through a Scheduler so it can be cancelled with Close
// when the host tears the page down before it fires.
package controller
