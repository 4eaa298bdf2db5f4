// Package tagging wires the prober and scorer into a host.Registry.
//
// Adapter.Register installs three callbacks: the file-loaded hook probes the
// file, scores it and writes the quality tags; the file-saved and album hooks
// only report what they see. The total-failure policy (what to write when
// nothing could be probed) is applied in one place, Adapter.qualityFor.
package tagging
