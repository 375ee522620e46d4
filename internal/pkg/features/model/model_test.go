package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func item(name string, dependents ...string) *Item {
	i := NewItem(name)
	i.Dependents = dependents
	return i
}

func TestCollection_Order(t *testing.T) {
	t.Parallel()

	c := NewCollection(item("b"), item("a"), item("c"))
	assert.Equal(t, []string{"b", "a", "c"}, c.Names())

	// Replace keeps position
	c.Add(&Item{Name: "a", Label: "A"})
	assert.Equal(t, []string{"b", "a", "c"}, c.Names())
	a, found := c.Get("a")
	require.True(t, found)
	assert.Equal(t, "A", a.Label)

	c.Remove("a")
	c.Remove("missing")
	assert.Equal(t, []string{"b", "c"}, c.Names())
	assert.Equal(t, 2, c.Len())
}

func TestPackageLabel(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "Core", PackageLabel("core"))
	assert.Equal(t, "Event Registration", PackageLabel("event_registration"))
	assert.Equal(t, "Test Mybundle Article", PackageLabel("test_mybundle_article"))
}

func TestPackage_Config(t *testing.T) {
	t.Parallel()

	pkg := NewPackage("my_pkg", "", "", "", "")
	assert.Equal(t, "My Pkg", pkg.Name)
	assert.Equal(t, PackageTypeModule, pkg.Type)
	assert.Equal(t, StatusNoExport, pkg.Status)

	pkg.AppendConfig("a")
	pkg.AppendConfig("b")
	pkg.AppendConfig("a")
	assert.Equal(t, []string{"a", "b"}, pkg.Config)
	pkg.RemoveConfig("a")
	assert.Equal(t, []string{"b"}, pkg.Config)

	pkg.MergeDependencies("node", "my_pkg", "", "node", "text")
	assert.Equal(t, []string{"node", "text"}, pkg.Dependencies)
}

func TestDependentsClosure(t *testing.T) {
	t.Parallel()

	c := NewCollection(
		item("a", "b"),
		item("b", "c", "missing"),
		item("c", "a"), // cycle
		item("d"),
	)
	assert.Equal(t, []string{"b", "c"}, DependentsClosure(c, "a"))
	assert.Empty(t, DependentsClosure(c, "d"))
	assert.Empty(t, DependentsClosure(c, "missing"))
}

func TestDependencyOrder(t *testing.T) {
	t.Parallel()

	c := NewCollection(
		item("child", "parent"),
		item("parent", "grandparent"),
		item("grandparent"),
		item("x", "y"),
		item("y", "x"), // cycle
	)
	assert.Equal(t, []string{"grandparent", "parent", "child", "y", "x"}, DependencyOrder(c))
}

func TestComputeDependents(t *testing.T) {
	t.Parallel()

	storage := NewItem("field.storage.node.body")
	field := NewItem("field.field.node.article.body")
	require.NoError(t, field.Data.SetNested("dependencies.config", []any{"field.storage.node.body", "node.type.article"}))
	display := NewItem("core.entity_view_display.node.article.default")
	require.NoError(t, display.Data.SetNested("dependencies.config", []any{"field.field.node.article.body", "node.type.article"}))
	nodeType := NewItem("node.type.article")

	c := NewCollection(storage, field, display, nodeType)
	ComputeDependents(c)

	assert.Equal(t, []string{"field.field.node.article.body", "core.entity_view_display.node.article.default"}, storage.Dependents)
	assert.Equal(t, []string{"core.entity_view_display.node.article.default"}, field.Dependents)
	assert.Empty(t, display.Dependents)
	assert.Equal(t, []string{"field.field.node.article.body", "core.entity_view_display.node.article.default"}, nodeType.Dependents)
}

func TestRequired_YAML(t *testing.T) {
	t.Parallel()

	var v struct {
		A Required `yaml:"a"`
		B Required `yaml:"b"`
		C Required `yaml:"c"`
	}
	require.NoError(t, yaml.Unmarshal([]byte("a: true\nb: [foo, bar]\nc: false\n"), &v))
	assert.Equal(t, RequiredAll(), v.A)
	assert.Equal(t, RequiredItems("foo", "bar"), v.B)
	assert.False(t, v.C.IsRequired())
	assert.Equal(t, []string{"foo", "bar"}, v.B.Filter([]string{"z"}))
	assert.Equal(t, []string{"z"}, v.A.Filter([]string{"z"}))

	out, err := yaml.Marshal(v)
	require.NoError(t, err)
	assert.Equal(t, "a: true\nb:\n    - foo\n    - bar\nc: false\n", string(out))

	err = yaml.Unmarshal([]byte("a: {foo: bar}\n"), &v)
	require.Error(t, err)
}

func TestBundle_Namespace(t *testing.T) {
	t.Parallel()

	def := NewDefaultBundle()
	assert.True(t, def.IsDefault())
	assert.Equal(t, "core", def.FullName("core"))
	assert.Equal(t, "core", def.ShortName("core"))

	b := NewBundleFromDefault("test", "")
	assert.False(t, b.IsDefault())
	assert.Equal(t, "test", b.Name)
	assert.Equal(t, "test_core", b.FullName("core"))
	assert.Equal(t, "test_core", b.FullName("test_core"))
	assert.Equal(t, "core", b.ShortName("test_core"))
	assert.True(t, b.InNamespace("test_feature"))
	assert.False(t, b.InNamespace("test"))

	b.IsProfile = true
	b.ProfileName = "myprofile"
	assert.True(t, b.IsProfilePackage("myprofile"))
	assert.False(t, b.IsProfilePackage("test"))
}

func TestBundle_Assignments(t *testing.T) {
	t.Parallel()

	b := NewDefaultBundle()
	assert.Equal(t, []string{
		MethodPackages, MethodExclude, MethodBase, MethodAlter, MethodNamespace, MethodOptional,
		MethodForwardDependency, MethodCore, MethodSite, MethodProfile, MethodExisting, MethodDependency,
	}, b.EnabledAssignments())

	b.SetEnabledAssignments([]string{MethodCore})
	assert.Equal(t, []string{MethodCore}, b.EnabledAssignments())

	b.SetAssignmentSettings(MethodOptional, Settings{Types: TypeSettings{Config: []string{"image_style"}}})
	assert.Equal(t, []string{"image_style"}, b.AssignmentSettings(MethodOptional).Types.Config)
	assert.False(t, b.Assignment(MethodOptional).Enabled)
	assert.Equal(t, 0, b.Assignment(MethodOptional).Weight)

	b.SetAssignmentWeight(MethodCore, -100)
	b.SetEnabledAssignments([]string{MethodCore, MethodPackages})
	assert.Equal(t, []string{MethodCore, MethodPackages}, b.EnabledAssignments())

	clone := b.Clone()
	clone.SetEnabledAssignments(nil)
	assert.Empty(t, clone.EnabledAssignments())
	assert.Len(t, b.EnabledAssignments(), 2)
}

func TestSite_ConfigTypeOf(t *testing.T) {
	t.Parallel()

	site := NewSite()
	site.EntityTypes = []EntityType{
		{ID: "node", Label: "Content", Group: EntityGroupContent},
		{ID: "node_type", Label: "Content type", Group: EntityGroupConfiguration, ConfigPrefix: "node.type"},
		{ID: "field_config", Label: "Field", Group: EntityGroupConfiguration, ConfigPrefix: "field.field"},
		{ID: "field_storage_config", Label: "Field storage", Group: EntityGroupConfiguration, ConfigPrefix: "field.storage"},
		{ID: "user", Label: "User", Group: EntityGroupContent},
	}

	typ, short := site.ConfigTypeOf("node.type.article")
	assert.Equal(t, "node_type", typ)
	assert.Equal(t, "article", short)

	typ, short = site.ConfigTypeOf("field.field.node.article.body")
	assert.Equal(t, "field_config", typ)
	assert.Equal(t, "node.article.body", short)

	typ, short = site.ConfigTypeOf("system.cron")
	assert.Equal(t, SimpleConfigType, typ)
	assert.Equal(t, "system.cron", short)

	assert.Equal(t, "Content type", site.ConfigTypeLabel("node_type"))
	assert.Equal(t, "Simple configuration", site.ConfigTypeLabel(SimpleConfigType))
	assert.Equal(t, []string{"node", "user"}, site.ContentEntityTypes())
}

func TestSite_Extensions(t *testing.T) {
	t.Parallel()

	site := NewSite()
	site.Extensions = []*Extension{
		{Name: "system", Installed: true, Config: []string{"system.cron", "core.date_format.long"}},
		{Name: "my_feature", Installed: false, Config: []string{"node.type.article"}, Feature: &FeatureInfo{}},
		{Name: "other_feature", Installed: true, OptionalConfig: []string{"system.cron"}, Feature: &FeatureInfo{}},
	}
	site.Active.Add(NewItem("system.cron"))

	assert.ElementsMatch(t, []string{"system.cron", "core.date_format.long"}, site.InstalledConfig().ToSlice())
	assert.Equal(t, map[string]string{"node.type.article": "my_feature", "system.cron": "other_feature"}, site.ConfigProviders())
	require.Len(t, site.FeatureExtensions(), 2)

	active := site.ActiveCollection()
	cron, found := active.Get("system.cron")
	require.True(t, found)
	assert.Equal(t, "other_feature", cron.Provider)

	// Copy does not affect the site
	cron.Package = "foo"
	original, _ := site.Active.Get("system.cron")
	assert.Empty(t, original.Package)
}
