package kernel

type JobTitle string

type JobDescription string

type JobRequirement string

// Email is stored lower-cased and trimmed
type Email string

type BucketURL string
