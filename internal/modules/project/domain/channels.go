package domain

// Channel names the notification topic a mutation announces on.
type Channel string

const (
	ChannelEngagement Channel = "employee-engagement-sync"
	ChannelFinancing  Channel = "financing-sync"
	ChannelSteps      Channel = "steps-sync"
	ChannelDocuments  Channel = "documents-sync"
	ChannelProject    Channel = "project-sync"
	ChannelAnalysis   Channel = "analysis-sync"
	ChannelNextSteps  Channel = "next-steps-sync"
)

// AllChannels is the set a reset announces on.
var AllChannels = []Channel{
	ChannelEngagement,
	ChannelFinancing,
	ChannelSteps,
	ChannelDocuments,
	ChannelProject,
	ChannelAnalysis,
	ChannelNextSteps,
}
