package cmd

// GlobalFlags are accepted by all commands.
type GlobalFlags struct {
	Verbose    bool   `configKey:"verbose" configShorthand:"v" configUsage:"Print debug messages."`
	WorkingDir string `configKey:"workingDir" configShorthand:"d" configUsage:"Use other working directory."`
}

type AssignFlags struct {
	GlobalFlags `configKey:",squash"`
	SiteDir     string   `configKey:"siteDir" configUsage:"Directory with the site snapshot." validate:"required"`
	BundlesDir  string   `configKey:"bundlesDir" configUsage:"Directory with bundle definitions." validate:"required"`
	Bundle      string   `configKey:"bundle" configShorthand:"b" configUsage:"Bundle machine name, the default bundle is used if empty."`
	Methods     []string `configKey:"method" configShorthand:"m" configUsage:"Assignment method to apply, can be used multiple times."`
	Force       bool     `configKey:"force" configShorthand:"f" configUsage:"Move config already assigned to another package."`
}

type ExportFlags struct {
	AssignFlags `configKey:",squash"`
	TargetDir   string   `configKey:"targetDir" configShorthand:"t" configUsage:"Directory to write modules to." validate:"required"`
	Packages    []string `configKey:"package" configShorthand:"p" configUsage:"Package to export, can be used multiple times."`
}

type BundleListFlags struct {
	GlobalFlags `configKey:",squash"`
	BundlesDir  string `configKey:"bundlesDir" configUsage:"Directory with bundle definitions." validate:"required"`
}

type BundleCreateFlags struct {
	GlobalFlags `configKey:",squash"`
	BundlesDir  string `configKey:"bundlesDir" configUsage:"Directory with bundle definitions." validate:"required"`
	MachineName string `configKey:"machineName" configUsage:"Bundle machine name, generated from the name if empty."`
	Name        string `configKey:"name" configShorthand:"n" configUsage:"Human readable bundle name." validate:"required"`
	Profile     bool   `configKey:"profile" configUsage:"Create an installation profile bundle."`
	ProfileName string `configKey:"profileName" configUsage:"Profile machine name, the bundle machine name is used if empty."`
}

func DefaultAssignFlags() AssignFlags {
	return AssignFlags{
		SiteDir:    ".",
		BundlesDir: "bundles",
	}
}

func DefaultExportFlags() ExportFlags {
	return ExportFlags{
		AssignFlags: DefaultAssignFlags(),
		TargetDir:   "modules",
	}
}

func DefaultBundleListFlags() BundleListFlags {
	return BundleListFlags{BundlesDir: "bundles"}
}

func DefaultBundleCreateFlags() BundleCreateFlags {
	return BundleCreateFlags{BundlesDir: "bundles"}
}
