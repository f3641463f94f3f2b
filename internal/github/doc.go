// Package github connects the review pipeline to GitHub pull requests.
//
// In a GitHub Actions run, [ActionsContextFromEnv] finds the pull request
// from the workflow event. [PRSource] fetches its diff and [PRCommenter]
// posts the finished review back as a conversation comment. The client is
// built on go-github with an oauth2 static token source.
package github
