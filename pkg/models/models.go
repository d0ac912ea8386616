// Package models defines the data structures exchanged with the board backend.
package models

// Project represents a project as returned by the backend.
type Project struct {
	// ID is the numeric project identifier
	ID int64 `json:"id" yaml:"id"`

	// Key is the short project key used as ticket prefix (e.g., "WEB")
	Key string `json:"key" yaml:"key"`

	// FullName is the human readable project name
	FullName string `json:"fullName" yaml:"fullName"`

	// ProjectOwnerName is the display name of the owning team member
	ProjectOwnerName string `json:"projectOwnerName,omitempty" yaml:"projectOwnerName,omitempty"`

	// TeamName is the name of the team working on the project
	TeamName string `json:"teamName,omitempty" yaml:"teamName,omitempty"`
}

// ProjectRequest is the payload for creating or partially updating a project.
// Empty fields are omitted so PATCH only touches what was set.
type ProjectRequest struct {
	Key              string `json:"key,omitempty"`
	FullName         string `json:"fullName,omitempty"`
	ProjectOwnerName string `json:"projectOwnerName,omitempty"`
	TeamName         string `json:"teamName,omitempty"`
}

// Team represents a team of members.
type Team struct {
	// ID is the numeric team identifier
	ID int64 `json:"id" yaml:"id"`

	// Name is the unique team name
	Name string `json:"name" yaml:"name"`

	// ProjectManagerName is the display name of the team's project manager
	ProjectManagerName string `json:"projectManagerName,omitempty" yaml:"projectManagerName,omitempty"`

	// TeamMemberIDs lists the members belonging to the team
	TeamMemberIDs []int64 `json:"teamMemberIds" yaml:"teamMemberIds"`
}

// TeamRequest is the payload for creating or partially updating a team.
type TeamRequest struct {
	Name               string  `json:"name,omitempty"`
	ProjectManagerName string  `json:"projectManagerName,omitempty"`
	TeamMemberIDs      []int64 `json:"teamMemberIds,omitempty"`
}

// TeamMember represents a person that can report, be assigned or review tickets.
// The logged-in user is also a TeamMember.
type TeamMember struct {
	ID            int64  `json:"id" yaml:"id"`
	FirstName     string `json:"firstName" yaml:"firstName"`
	LastName      string `json:"lastName" yaml:"lastName"`
	Email         string `json:"email" yaml:"email"`
	Position      string `json:"position,omitempty" yaml:"position,omitempty"`
	LoginInGithub string `json:"loginInGithub,omitempty" yaml:"loginInGithub,omitempty"`
	AvatarURL     string `json:"avatarUrl,omitempty" yaml:"avatarUrl,omitempty"`

	// TeamID is nil for members without a team
	TeamID *int64 `json:"teamId,omitempty" yaml:"teamId,omitempty"`
}

// FullName joins first and last name the way every view displays it.
func (m TeamMember) FullName() string {
	return m.FirstName + " " + m.LastName
}

// TeamMemberRequest is the payload for creating or partially updating a member.
type TeamMemberRequest struct {
	FirstName     string `json:"firstName,omitempty"`
	LastName      string `json:"lastName,omitempty"`
	Email         string `json:"email,omitempty"`
	Position      string `json:"position,omitempty"`
	LoginInGithub string `json:"loginInGithub,omitempty"`
	AvatarURL     string `json:"avatarUrl,omitempty"`
	TeamID        *int64 `json:"teamId,omitempty"`
}

// Label is a coloured tag that can be attached to tickets of a project.
type Label struct {
	ID        int64  `json:"id" yaml:"id"`
	Name      string `json:"name" yaml:"name"`
	Color     string `json:"color" yaml:"color"`
	ProjectID int64  `json:"projectId,omitempty" yaml:"projectId,omitempty"`
}

// Board is a project board. Exactly one board of a project is usually flagged as default.
type Board struct {
	ID        int64  `json:"id" yaml:"id"`
	Name      string `json:"name" yaml:"name"`
	ProjectID int64  `json:"projectId,omitempty" yaml:"projectId,omitempty"`
	Default   bool   `json:"default" yaml:"default"`
}

// BoardRequest is the payload for creating a board.
type BoardRequest struct {
	Name      string `json:"name"`
	ProjectID int64  `json:"projectId"`
	Default   bool   `json:"default,omitempty"`
}

// PullRequest is a GitHub pull request linked to a ticket by the backend.
type PullRequest struct {
	Title             string `json:"title" yaml:"title"`
	HTMLURL           string `json:"htmlUrl" yaml:"htmlUrl"`
	RepositoryName    string `json:"repositoryName" yaml:"repositoryName"`
	Actor             string `json:"actor,omitempty" yaml:"actor,omitempty"`
	PullRequestStatus string `json:"pullRequestStatus,omitempty" yaml:"pullRequestStatus,omitempty"`
}

// WorkflowRun is a GitHub Actions run linked to a ticket by the backend.
type WorkflowRun struct {
	Name           string `json:"name,omitempty" yaml:"name,omitempty"`
	HTMLURL        string `json:"htmlUrl" yaml:"htmlUrl"`
	RepositoryName string `json:"repositoryName" yaml:"repositoryName"`
	Actor          string `json:"actor,omitempty" yaml:"actor,omitempty"`

	// Conclusion is nil while the run is still in progress
	Conclusion *string `json:"conclusion" yaml:"conclusion"`
}

// Ticket is the raw ticket record as served by the backend.
type Ticket struct {
	// ID is the numeric ticket identifier
	ID int64 `json:"id" yaml:"id"`

	// TicketIdentifier is the human facing key (e.g., "WEB-42")
	TicketIdentifier string `json:"ticketIdentifier" yaml:"ticketIdentifier"`

	// Summary is the ticket title
	Summary string `json:"summary" yaml:"summary"`

	// Priority is stored as sent, e.g. CRITICAL, MEDIUM or empty
	Priority string `json:"priority" yaml:"priority"`

	Labels   []Label     `json:"labels" yaml:"labels"`
	Assignee *TeamMember `json:"assignee" yaml:"assignee,omitempty"`
	Reporter *TeamMember `json:"reporter" yaml:"reporter"`

	Description       string `json:"description" yaml:"description"`
	GithubDescription string `json:"githubDescription" yaml:"githubDescription"`

	// CreatedAt is an ISO-8601 timestamp
	CreatedAt string `json:"createdAt" yaml:"createdAt"`

	LinkedTicketIDs    []int64       `json:"linkedTicketIds" yaml:"linkedTicketIds"`
	Status             string        `json:"status" yaml:"status"`
	LinkedPullRequests []PullRequest `json:"linkedPullRequests" yaml:"linkedPullRequests"`
	LinkedWorkflowRuns []WorkflowRun `json:"linkedWorkflowRuns" yaml:"linkedWorkflowRuns"`
}

// TicketRequest is the payload for creating or partially updating a ticket.
type TicketRequest struct {
	Summary        string  `json:"summary,omitempty"`
	Description    string  `json:"description,omitempty"`
	AssigneeID     *int64  `json:"assigneeId,omitempty"`
	Priority       string  `json:"priority,omitempty"`
	LabelIDs       []int64 `json:"labelIds,omitempty"`
	Status         string  `json:"status,omitempty"`
	ProjectID      int64   `json:"projectId,omitempty"`
	ProjectBoardID int64   `json:"projectBoardId,omitempty"`
}

// LoginRequest carries the credentials for /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is returned by a successful login.
type LoginResponse struct {
	Token      string      `json:"token"`
	TeamMember *TeamMember `json:"teamMember"`
}
