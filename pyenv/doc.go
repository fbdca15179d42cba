// Package pyenv inspects and manages a host Python environment.
//
// It provides three capabilities:
//
//   - Snapshot: a point-in-time capture of the interpreter (version,
//     implementation, platform, virtual-environment status, pip version),
//     taken by probing the interpreter with short, bounded subprocess calls.
//   - ModuleResolver: resolution of an installed package by name to its
//     distribution metadata, backed by the site-packages inventory
//     (*.dist-info / *.egg-info directories). A StaticResolver is provided
//     for tests.
//   - Environment management: virtual-environment creation, interpreter
//     executable selection inside a venv, and application launching.
//
// A snapshot reflects ground truth as of the call; nothing is cached, so two
// snapshots taken in the same process can disagree if the environment is
// mutated in between.
package pyenv
