package repoargs

type RepositoryName string

const (
	UserRepoName         RepositoryName = "user"
	CourseRepoName       RepositoryName = "course"
	LectureRepoName      RepositoryName = "lecture"
	PaymentRepoName      RepositoryName = "payment"
	SubscriptionRepoName RepositoryName = "subscription"
	OutboxRepoName       RepositoryName = "outbox"
)
